package dto

type GenerateRequest struct {
	Text        string `json:"text" binding:"required"`
	InDepthMode bool   `json:"in_depth_mode"`
}

type GenerateResponse struct {
	Success   bool   `json:"success"`
	RequestID string `json:"request_id"`
	VideoURL  string `json:"video_url"`
	Text      string `json:"text,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type StatusEvent struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	Topic     string `json:"topic,omitempty"`
	VideoURL  string `json:"video_url,omitempty"`
	Error     string `json:"error,omitempty"`
}
