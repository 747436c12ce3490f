package chat

import "time"

// Room represents one group-chat session. A room is seeded once from a
// posting's team at creation and diverges from the posting afterwards:
// joining the room never writes back to the posting, and accepting a new
// member on the posting never appears in an existing room.
type Room struct {
	ID          string    `json:"id"`
	StartupID   *int64    `json:"startup_id,omitempty"`
	StartupName string    `json:"startup_name,omitempty"`
	Members     []Member  `json:"members"`
	Messages    []Message `json:"messages"`
	CreatedAt   time.Time `json:"created_at"`

	// joined tracks which member names have joined this session and may
	// send messages. Seeded members have not joined until they do so
	// themselves.
	joined map[string]bool
}

// Member represents a person on the room's roster
type Member struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Online bool   `json:"online"`
}

// Message represents one chat message
type Message struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Seed is the one-directional hand-off from a startup posting to a new
// room. It is a value copy taken at room creation; the room keeps no
// reference into the posting store.
type Seed struct {
	StartupID int64
	Name      string
	Members   []SeedMember
}

// SeedMember is a team member carried over by a Seed
type SeedMember struct {
	Name string
	Role string
}
