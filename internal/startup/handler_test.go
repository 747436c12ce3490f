package startup_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SagarNRao/agile-lab2-startup-market/internal/access"
	"github.com/SagarNRao/agile-lab2-startup-market/internal/startup"
	mw "github.com/SagarNRao/agile-lab2-startup-market/pkg/middleware"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	startupService := startup.NewService(startup.NewRepository())
	accessService := access.NewService(startupService)
	startupHandler := startup.NewHandler(startupService, mw.RequireUnlock(accessService))
	accessHandler := access.NewHandler(accessService)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/startups", startupHandler.Routes())
		r.Mount("/sessions", accessHandler.Routes())
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

func TestOwnerReviewFlow(t *testing.T) {
	srv := newServer(t)

	// Post the idea.
	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/startups", "", map[string]string{
		"owner":       "Bo",
		"password":    "x",
		"name":        "Acme",
		"description": "d",
		"roles":       "eng, design",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID    int64    `json:"id"`
		Roles []string `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, []string{"eng", "design"}, created.Roles)

	base := fmt.Sprintf("%s/api/v1/startups/%d", srv.URL, created.ID)

	// Carol applies for eng.
	resp, _ = doJSON(t, http.MethodPost, base+"/applications", "", map[string]string{
		"role":      "eng",
		"applicant": "Carol",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// The team view is locked without a token.
	resp, _ = doJSON(t, http.MethodGet, base+"/team", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Wrong credentials get the one generic message.
	resp, env = doJSON(t, http.MethodPost, srv.URL+"/api/v1/sessions", "", map[string]interface{}{
		"startup_id": created.ID,
		"owner":      "Bo",
		"password":   "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Invalid owner name or password", env.Error.Message)

	// The right pair unlocks.
	resp, env = doJSON(t, http.MethodPost, srv.URL+"/api/v1/sessions", "", map[string]interface{}{
		"startup_id": created.ID,
		"owner":      "Bo",
		"password":   "x",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.NotEmpty(t, session.Token)

	// The team view shows Carol's pending application.
	resp, env = doJSON(t, http.MethodGet, base+"/team", session.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var team struct {
		Members      []map[string]string `json:"members"`
		Applications []struct {
			ID        string `json:"id"`
			Role      string `json:"role"`
			Applicant string `json:"applicant"`
			Status    string `json:"status"`
		} `json:"applications"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &team))
	assert.Empty(t, team.Members)
	require.Len(t, team.Applications, 1)
	assert.Equal(t, "Carol", team.Applications[0].Applicant)
	assert.Equal(t, "eng", team.Applications[0].Role)
	assert.Equal(t, "pending", team.Applications[0].Status)

	// Accept it.
	resp, _ = doJSON(t, http.MethodPost, base+"/applications/"+team.Applications[0].ID+"/accept", session.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = doJSON(t, http.MethodGet, base+"/team", session.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &team))
	require.Len(t, team.Members, 1)
	assert.Equal(t, "Carol", team.Members[0]["name"])
	assert.Equal(t, "eng", team.Members[0]["role"])
	assert.Equal(t, "accepted", team.Applications[0].Status)

	// Accepting again conflicts.
	resp, _ = doJSON(t, http.MethodPost, base+"/applications/"+team.Applications[0].ID+"/accept", session.Token, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUnlockTokenDoesNotCarryOver(t *testing.T) {
	srv := newServer(t)

	var ids [2]int64
	for i := range ids {
		resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/startups", "", map[string]string{
			"owner":       "Bo",
			"password":    "x",
			"name":        fmt.Sprintf("Acme %d", i),
			"description": "d",
			"roles":       "eng",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var created struct {
			ID int64 `json:"id"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &created))
		ids[i] = created.ID
	}

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/sessions", "", map[string]interface{}{
		"startup_id": ids[0],
		"owner":      "Bo",
		"password":   "x",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))

	// A token for the first posting does not open the second.
	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/startups/%d/team", srv.URL, ids[1]), session.Token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// After reset, the token is dead for its own posting too.
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/sessions", session.Token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/startups/%d/team", srv.URL, ids[0]), session.Token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreate_MissingFieldsRejectedOverHTTP(t *testing.T) {
	srv := newServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/startups", "", map[string]string{
		"owner": "Bo",
		"name":  "Acme",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/startups", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list)
}
