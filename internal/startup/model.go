package startup

import (
	"strings"
	"time"
)

// ApplicationStatus represents the lifecycle status of an application
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Startup represents a posted startup idea with open roles
type Startup struct {
	ID           int64         `json:"id"`
	Owner        string        `json:"owner"`
	Password     string        `json:"-"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Roles        string        `json:"roles"`
	Members      []TeamMember  `json:"members"`
	Applications []Application `json:"applications"`
	CreatedAt    time.Time     `json:"created_at"`
}

// TeamMember represents an accepted member of a startup's team
type TeamMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Application represents a candidate's request to fill a role
type Application struct {
	ID        string            `json:"id"`
	Role      string            `json:"role"`
	Applicant string            `json:"applicant"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// RoleList splits the comma-delimited roles field into trimmed role labels.
// Blank fragments are dropped.
func (s *Startup) RoleList() []string {
	parts := strings.Split(s.Roles, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if role := strings.TrimSpace(p); role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}
