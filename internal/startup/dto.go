package startup

// CreateStartupRequest represents the request to post a new startup idea
type CreateStartupRequest struct {
	Owner       string `json:"owner"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Roles       string `json:"roles" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

// ApplyRequest represents the request to apply for a role on a startup
type ApplyRequest struct {
	Role      string `json:"role"`
	Applicant string `json:"applicant" validate:"required"`
}

// StartupResponse is the public projection of a startup posting.
// Applications and members are only served through the gated team view.
type StartupResponse struct {
	ID          int64    `json:"id"`
	Owner       string   `json:"owner"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Roles       []string `json:"roles"`
	CreatedAt   string   `json:"created_at"`
}

// TeamResponse is the owner-only view of a posting's applications and members
type TeamResponse struct {
	StartupID    int64                  `json:"startup_id"`
	Members      []*MemberResponse      `json:"members"`
	Applications []*ApplicationResponse `json:"applications"`
}

// MemberResponse represents a team member in a team response
type MemberResponse struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// ApplicationResponse represents an application in a team response
type ApplicationResponse struct {
	ID        string            `json:"id"`
	Role      string            `json:"role"`
	Applicant string            `json:"applicant"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt string            `json:"created_at"`
}

// ToResponse converts a Startup model to its public StartupResponse DTO
func (s *Startup) ToResponse() *StartupResponse {
	return &StartupResponse{
		ID:          s.ID,
		Owner:       s.Owner,
		Name:        s.Name,
		Description: s.Description,
		Roles:       s.RoleList(),
		CreatedAt:   s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToTeamResponse converts a Startup model to its owner-only TeamResponse DTO
func (s *Startup) ToTeamResponse() *TeamResponse {
	resp := &TeamResponse{
		StartupID:    s.ID,
		Members:      make([]*MemberResponse, len(s.Members)),
		Applications: make([]*ApplicationResponse, len(s.Applications)),
	}
	for i, m := range s.Members {
		resp.Members[i] = &MemberResponse{Name: m.Name, Role: m.Role}
	}
	for i, a := range s.Applications {
		resp.Applications[i] = a.ToResponse()
	}
	return resp
}

// ToResponse converts an Application model to an ApplicationResponse DTO
func (a *Application) ToResponse() *ApplicationResponse {
	return &ApplicationResponse{
		ID:        a.ID,
		Role:      a.Role,
		Applicant: a.Applicant,
		Status:    a.Status,
		CreatedAt: a.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
