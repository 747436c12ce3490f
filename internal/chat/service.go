package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrRoomNotFound    = errors.New("chat room not found")
	ErrMissingIdentity = errors.New("name and role are required to join")
	ErrMissingContent  = errors.New("message content is required")
	ErrNotJoined       = errors.New("join the chat before sending messages")
)

// Service handles chat room business logic
type Service struct {
	repo         *Repository
	historyLimit int
}

// NewService creates a new chat service. historyLimit caps the message log
// per room; older messages fall off the front.
func NewService(repo *Repository, historyLimit int) *Service {
	return &Service{repo: repo, historyLimit: historyLimit}
}

// Create opens a new room. With a seed, the roster starts as the seeded
// team, everyone marked online; without one, the roster starts empty. This
// is the only time posting data enters the room.
func (s *Service) Create(ctx context.Context, seed *Seed) (*Room, error) {
	room := &Room{
		ID:        uuid.NewString(),
		Members:   []Member{},
		Messages:  []Message{},
		CreatedAt: time.Now(),
		joined:    make(map[string]bool),
	}

	if seed != nil {
		room.StartupID = &seed.StartupID
		room.StartupName = seed.Name
		for _, m := range seed.Members {
			room.Members = append(room.Members, Member{
				Name:   m.Name,
				Role:   m.Role,
				Online: true,
			})
		}
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// GetByID retrieves a room by its ID
func (s *Service) GetByID(ctx context.Context, id string) (*Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Join adds a member to the roster and unlocks the composer for that name.
// Duplicate names are not prevented, and the joiner does not have to match
// any seeded member.
func (s *Service) Join(ctx context.Context, roomID, name, role string) (*Member, error) {
	name = strings.TrimSpace(name)
	role = strings.TrimSpace(role)
	if name == "" || role == "" {
		return nil, ErrMissingIdentity
	}

	room, err := s.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	member := Member{Name: name, Role: role, Online: true}
	room.Members = append(room.Members, member)
	room.joined[name] = true

	if err := s.save(ctx, room); err != nil {
		return nil, err
	}
	return &member, nil
}

// Send appends a message from a joined sender. Messages keep strict
// insertion order.
func (s *Service) Send(ctx context.Context, roomID, sender, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMissingContent
	}

	room, err := s.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if sender == "" || !room.joined[sender] {
		return nil, ErrNotJoined
	}

	message := Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now(),
	}
	room.Messages = append(room.Messages, message)
	if len(room.Messages) > s.historyLimit {
		room.Messages = room.Messages[len(room.Messages)-s.historyLimit:]
	}

	if err := s.save(ctx, room); err != nil {
		return nil, err
	}
	return &message, nil
}

func (s *Service) save(ctx context.Context, room *Room) error {
	ok, err := s.repo.Update(ctx, room)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRoomNotFound
	}
	return nil
}
