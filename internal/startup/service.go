package startup

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrStartupNotFound       = errors.New("startup not found")
	ErrApplicationNotFound   = errors.New("application not found")
	ErrApplicationNotPending = errors.New("application has already been decided")
	ErrMissingFields         = errors.New("name, description, roles and password are required")
	ErrMissingApplicant      = errors.New("applicant name is required")
)

// Service handles startup posting business logic
type Service struct {
	repo *Repository

	mu     sync.Mutex
	lastID int64
}

// NewService creates a new startup service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create posts a new startup idea. Owner may be blank; the posting is then
// simply attributed to nobody, matching the open form this grew out of.
func (s *Service) Create(ctx context.Context, req *CreateStartupRequest) (*Startup, error) {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Description) == "" ||
		strings.TrimSpace(req.Roles) == "" ||
		strings.TrimSpace(req.Password) == "" {
		return nil, ErrMissingFields
	}

	startup := &Startup{
		ID:           s.nextID(),
		Owner:        req.Owner,
		Password:     req.Password,
		Name:         req.Name,
		Description:  req.Description,
		Roles:        req.Roles,
		Members:      []TeamMember{},
		Applications: []Application{},
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, startup); err != nil {
		return nil, err
	}
	return startup, nil
}

// GetByID retrieves a posting by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Startup, error) {
	startup, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if startup == nil {
		return nil, ErrStartupNotFound
	}
	return startup, nil
}

// List retrieves postings in creation order
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Startup, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Apply records an application for a role on a posting. The role is taken
// on faith: it is not checked against the posting's role list, and repeat
// applications from the same person are not deduplicated.
func (s *Service) Apply(ctx context.Context, startupID int64, req *ApplyRequest) (*Application, error) {
	applicant := strings.TrimSpace(req.Applicant)
	if applicant == "" {
		return nil, ErrMissingApplicant
	}

	startup, err := s.GetByID(ctx, startupID)
	if err != nil {
		return nil, err
	}

	app := Application{
		ID:        uuid.NewString(),
		Role:      strings.TrimSpace(req.Role),
		Applicant: applicant,
		Status:    ApplicationStatusPending,
		CreatedAt: time.Now(),
	}
	startup.Applications = append(startup.Applications, app)

	if err := s.save(ctx, startup); err != nil {
		return nil, err
	}
	return &app, nil
}

// AcceptApplication accepts a pending application and adds the applicant to
// the team. The application stays in the list with its status re-stamped, so
// the member count always equals the accepted-application count.
func (s *Service) AcceptApplication(ctx context.Context, startupID int64, applicationID string) (*Application, error) {
	return s.decide(ctx, startupID, applicationID, ApplicationStatusAccepted)
}

// RejectApplication rejects a pending application. No member is added.
func (s *Service) RejectApplication(ctx context.Context, startupID int64, applicationID string) (*Application, error) {
	return s.decide(ctx, startupID, applicationID, ApplicationStatusRejected)
}

func (s *Service) decide(ctx context.Context, startupID int64, applicationID string, status ApplicationStatus) (*Application, error) {
	startup, err := s.GetByID(ctx, startupID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, app := range startup.Applications {
		if app.ID == applicationID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrApplicationNotFound
	}
	if startup.Applications[idx].Status != ApplicationStatusPending {
		return nil, ErrApplicationNotPending
	}

	startup.Applications[idx].Status = status
	if status == ApplicationStatusAccepted {
		startup.Members = append(startup.Members, TeamMember{
			Name: startup.Applications[idx].Applicant,
			Role: startup.Applications[idx].Role,
		})
	}

	if err := s.save(ctx, startup); err != nil {
		return nil, err
	}

	app := startup.Applications[idx]
	return &app, nil
}

func (s *Service) save(ctx context.Context, startup *Startup) error {
	ok, err := s.repo.Update(ctx, startup)
	if err != nil {
		return err
	}
	if !ok {
		return ErrStartupNotFound
	}
	return nil
}

// nextID returns a creation-time id. Millisecond timestamps are unique
// enough for a feed, but two creations in the same tick get nudged apart.
func (s *Service) nextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}
