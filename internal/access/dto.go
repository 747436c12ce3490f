package access

// UnlockRequest represents an owner verification attempt for one posting
type UnlockRequest struct {
	StartupID int64  `json:"startup_id" validate:"required"`
	Owner     string `json:"owner"`
	Password  string `json:"password" validate:"required"`
}

// SessionResponse represents a minted unlock session
type SessionResponse struct {
	Token     string `json:"token"`
	StartupID int64  `json:"startup_id"`
	CreatedAt string `json:"created_at"`
}

// ToResponse converts a Session model to a SessionResponse DTO
func (s *Session) ToResponse() *SessionResponse {
	return &SessionResponse{
		Token:     s.Token,
		StartupID: s.StartupID,
		CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
