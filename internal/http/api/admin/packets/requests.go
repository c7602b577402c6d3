package packets

import "time"

// auth

type SignupRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     *string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateCurrentProfileRequest struct {
	Email string  `json:"email" binding:"required,email"`
	Name  *string `json:"name"`
}

// media servers

type CreateMediaServerRequest struct {
	Name     string `json:"name" binding:"required"`
	Host     string `json:"host" binding:"required"`
	Port     int    `json:"port" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// streams

type CreateStreamRequest struct {
	Name        string  `json:"name" binding:"required"`
	StreamKey   string  `json:"stream_key" binding:"required"`
	Description *string `json:"description"`
	ServerID    int     `json:"server_id" binding:"required"`
}

type UpdateStreamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// playlists

type CreatePlaylistRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Description *string                  `json:"description"`
	Items       []AddPlaylistItemRequest `json:"items"`
}

type UpdatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type AddPlaylistItemRequest struct {
	Title     string `json:"title" binding:"required"`
	SourceURL string `json:"source_url" binding:"required,url"`
	Duration  int    `json:"duration" binding:"gte=0"` // seconds, zero allowed
}

type UpdatePlaylistItemRequest struct {
	Title     *string `json:"title"`
	SourceURL *string `json:"source_url"`
	Duration  *int    `json:"duration" binding:"omitempty,gte=0"`
}

type ReorderItemsRequest struct {
	ItemIDs []int `json:"item_ids" binding:"required"`
}

// schedules

type CreateScheduleRequest struct {
	Name             string     `json:"name" binding:"required"`
	Description      *string    `json:"description"`
	StartDate        time.Time  `json:"start_date" binding:"required"` // RFC3339
	EndDate          *time.Time `json:"end_date"`
	IsRecurring      bool       `json:"is_recurring"`
	RecurringPattern *string    `json:"recurring_pattern"`
	IsActive         *bool      `json:"is_active"`
	StreamID         int        `json:"stream_id" binding:"required"`
	PlaylistID       *int       `json:"playlist_id"`
}

type UpdateScheduleRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsActive    *bool      `json:"is_active"`
}

// scheduler control

type SchedulerActionRequest struct {
	Action     string `json:"action" binding:"required,oneof=start stop execute"`
	ScheduleID *int   `json:"schedule_id"` // required when action=execute
}

// list filters

type ActiveFilterQuery struct {
	IsActive *bool `form:"is_active"`
}

type LogsQuery struct {
	Level *string `form:"level" binding:"omitempty,oneof=info warning error"`
	Limit int     `form:"limit,default=50" binding:"min=1,max=500"`
	Page  int     `form:"page,default=1" binding:"min=1"`
}
