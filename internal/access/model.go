package access

import "time"

// Session represents one unlocked posting. A session only exists in the
// unlocked state: holding a token means exactly one startup's private view
// is open, and dropping the token locks it again. There is no way to hold a
// session whose startup id disagrees with what was verified.
type Session struct {
	Token     string    `json:"token"`
	StartupID int64     `json:"startup_id"`
	CreatedAt time.Time `json:"created_at"`
}
