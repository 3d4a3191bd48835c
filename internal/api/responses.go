package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// DeniedResponse is returned when a quota-consuming action is refused. Reason
// is machine-readable so the frontend can render the matching upgrade prompt.
type DeniedResponse struct {
	Error    string `json:"error" example:"quota exceeded"`
	Reason   string `json:"reason" example:"quota_exceeded"`
	Resource string `json:"resource" example:"cv"`
}
