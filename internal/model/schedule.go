package model

import "time"

// ItemStatus is the lifecycle state of a ScheduleItem. Transitions only
// move forward: pending -> running -> completed | failed.
type ItemStatus string

const (
	ItemPending   ItemStatus = "pending"
	ItemRunning   ItemStatus = "running"
	ItemCompleted ItemStatus = "completed"
	ItemFailed    ItemStatus = "failed"
)

// Schedule is a persisted intent to play a playlist on a stream during a
// time window, optionally recurring.
type Schedule struct {
	ID               int        `db:"id"                json:"id"`
	Name             string     `db:"name"              json:"name"`
	Description      *string    `db:"description"       json:"description,omitempty"`
	StartDate        time.Time  `db:"start_date"        json:"start_date"`
	EndDate          *time.Time `db:"end_date"          json:"end_date,omitempty"`
	IsRecurring      bool       `db:"is_recurring"      json:"is_recurring"`
	RecurringPattern *string    `db:"recurring_pattern" json:"recurring_pattern,omitempty"`
	IsActive         bool       `db:"is_active"         json:"is_active"`
	StreamID         int        `db:"stream_id"         json:"stream_id"`
	PlaylistID       *int       `db:"playlist_id"       json:"playlist_id,omitempty"`
	CreatedBy        int        `db:"created_by"        json:"created_by"`
	CreatedAt        time.Time  `db:"created_at"        json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"        json:"updated_at"`

	// loaded relations, not columns
	Stream   *Stream        `db:"-" json:"stream,omitempty"`
	Playlist *Playlist      `db:"-" json:"playlist,omitempty"`
	Items    []ScheduleItem `db:"-" json:"items,omitempty"`
}

// ScheduleItem is one timed playable unit on a schedule's timeline,
// materialized from a playlist item. Position is 1-based and unique within
// a schedule; [StartTime, EndTime) intervals are contiguous, anchored at
// the schedule's StartDate.
type ScheduleItem struct {
	ID         int        `db:"id"          json:"id"`
	ScheduleID int        `db:"schedule_id" json:"schedule_id"`
	Title      string     `db:"title"       json:"title"`
	SourceURL  string     `db:"source_url"  json:"source_url"`
	Duration   int        `db:"duration"    json:"duration"` // seconds
	Position   int        `db:"position"    json:"position"`
	StartTime  time.Time  `db:"start_time"  json:"start_time"`
	EndTime    time.Time  `db:"end_time"    json:"end_time"`
	Status     ItemStatus `db:"status"      json:"status"`
	CreatedAt  time.Time  `db:"created_at"  json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"  json:"updated_at"`
}
