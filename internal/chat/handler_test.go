package chat_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SagarNRao/agile-lab2-startup-market/internal/chat"
	"github.com/SagarNRao/agile-lab2-startup-market/internal/startup"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type roomPayload struct {
	ID      string `json:"id"`
	Members []struct {
		Name   string `json:"name"`
		Role   string `json:"role"`
		Online bool   `json:"online"`
	} `json:"members"`
	Messages []struct {
		Sender  string `json:"sender"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newServer(t *testing.T) (*httptest.Server, *startup.Service) {
	t.Helper()

	startupService := startup.NewService(startup.NewRepository())
	chatService := chat.NewService(chat.NewRepository(), 500)
	chatHandler := chat.NewHandler(chatService, startupService)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/chats", chatHandler.Routes())
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, startupService
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func seedPosting(t *testing.T, startups *startup.Service) *startup.Startup {
	t.Helper()
	ctx := context.Background()

	created, err := startups.Create(ctx, &startup.CreateStartupRequest{
		Owner:       "Bo",
		Name:        "Acme",
		Description: "d",
		Roles:       "eng, design",
		Password:    "x",
	})
	require.NoError(t, err)

	app, err := startups.Apply(ctx, created.ID, &startup.ApplyRequest{Role: "design", Applicant: "Dee"})
	require.NoError(t, err)
	_, err = startups.AcceptApplication(ctx, created.ID, app.ID)
	require.NoError(t, err)

	return created
}

func TestCreateRoom_SeededFromPosting(t *testing.T) {
	srv, startups := newServer(t)
	posting := seedPosting(t, startups)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/chats", map[string]int64{
		"startup_id": posting.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var room roomPayload
	require.NoError(t, json.Unmarshal(env.Data, &room))
	require.Len(t, room.Members, 1)
	assert.Equal(t, "Dee", room.Members[0].Name)
	assert.Equal(t, "design", room.Members[0].Role)
	assert.True(t, room.Members[0].Online)
}

func TestCreateRoom_UnknownPosting(t *testing.T) {
	srv, _ := newServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/chats", map[string]int64{
		"startup_id": 404,
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSeedIsAOneWayCopy(t *testing.T) {
	srv, startups := newServer(t)
	ctx := context.Background()
	posting := seedPosting(t, startups)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/chats", map[string]int64{
		"startup_id": posting.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var room roomPayload
	require.NoError(t, json.Unmarshal(env.Data, &room))

	// Accepting another member on the posting does not reach the room.
	app, err := startups.Apply(ctx, posting.ID, &startup.ApplyRequest{Role: "eng", Applicant: "Frank"})
	require.NoError(t, err)
	_, err = startups.AcceptApplication(ctx, posting.ID, app.ID)
	require.NoError(t, err)

	resp, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/chats/"+room.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &room))
	assert.Len(t, room.Members, 1)

	// Joining the room does not write back to the posting.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/chats/"+room.ID+"/join", map[string]string{
		"name": "Eve",
		"role": "pm",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	fetched, err := startups.GetByID(ctx, posting.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Members, 2)
	for _, m := range fetched.Members {
		assert.NotEqual(t, "Eve", m.Name)
	}
}

func TestChatFlowOverHTTP(t *testing.T) {
	srv, _ := newServer(t)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/chats", map[string]interface{}{})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var room roomPayload
	require.NoError(t, json.Unmarshal(env.Data, &room))

	// Sending before joining is refused.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/chats/"+room.ID+"/messages", map[string]string{
		"sender":  "Eve",
		"content": "hi",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/chats/"+room.ID+"/join", map[string]string{
		"name": "Eve",
		"role": "pm",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/chats/"+room.ID+"/messages", map[string]string{
		"sender":  "Eve",
		"content": "hi",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/chats/"+room.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &room))
	require.Len(t, room.Messages, 1)
	assert.Equal(t, "Eve", room.Messages[0].Sender)
	assert.Equal(t, "hi", room.Messages[0].Content)
}
