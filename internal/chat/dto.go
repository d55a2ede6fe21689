package chat

// SendRequest is the body of POST /sessions/{id}/messages
type SendRequest struct {
	Text          string  `json:"text" validate:"required"`
	TypingSeconds float64 `json:"typing_seconds" validate:"gte=0"`
}

// ExportResponse tells where an export was written
type ExportResponse struct {
	SessionID string `json:"session_id"`
	Location  string `json:"location"`
}
