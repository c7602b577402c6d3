package packets

import "github.com/Nixie-Tech-LLC/nereus/internal/model"

// ProfileResponse mirrors model.User without the password hash, times
// flattened to RFC3339.
type ProfileResponse struct {
	ID        int     `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	CreatedAt string  `json:"created_at"`
}

// SchedulerStatusResponse is the engine's control-surface status.
type SchedulerStatusResponse struct {
	Running   bool   `json:"running"`
	LastCheck string `json:"last_check"`
}

// LogsResponse pages through the system log table.
type LogsResponse struct {
	Logs  []model.SystemLog `json:"logs"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
