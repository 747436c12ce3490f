package chat

// CreateRoomRequest represents the request to open a chat room, optionally
// seeded from a startup posting's team
type CreateRoomRequest struct {
	StartupID *int64 `json:"startup_id,omitempty"`
}

// JoinRequest represents the request to join a room
type JoinRequest struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"required"`
}

// SendMessageRequest represents the request to post a message
type SendMessageRequest struct {
	Sender  string `json:"sender" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// RoomResponse represents a chat room with its roster and message log
type RoomResponse struct {
	ID          string             `json:"id"`
	StartupID   *int64             `json:"startup_id,omitempty"`
	StartupName string             `json:"startup_name,omitempty"`
	Members     []*MemberResponse  `json:"members"`
	Messages    []*MessageResponse `json:"messages"`
	CreatedAt   string             `json:"created_at"`
}

// MemberResponse represents a roster entry
type MemberResponse struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Online bool   `json:"online"`
}

// MessageResponse represents a chat message
type MessageResponse struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ToResponse converts a Room model to a RoomResponse DTO
func (r *Room) ToResponse() *RoomResponse {
	resp := &RoomResponse{
		ID:          r.ID,
		StartupID:   r.StartupID,
		StartupName: r.StartupName,
		Members:     make([]*MemberResponse, len(r.Members)),
		Messages:    make([]*MessageResponse, len(r.Messages)),
		CreatedAt:   r.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	for i, m := range r.Members {
		resp.Members[i] = m.ToResponse()
	}
	for i, msg := range r.Messages {
		resp.Messages[i] = msg.ToResponse()
	}
	return resp
}

// ToResponse converts a Member model to a MemberResponse DTO
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{Name: m.Name, Role: m.Role, Online: m.Online}
}

// ToResponse converts a Message model to a MessageResponse DTO
func (m *Message) ToResponse() *MessageResponse {
	return &MessageResponse{
		ID:        m.ID,
		Sender:    m.Sender,
		Content:   m.Content,
		Timestamp: m.Timestamp.Format("2006-01-02T15:04:05Z"),
	}
}
