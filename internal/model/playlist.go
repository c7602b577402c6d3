package model

import "time"

type Playlist struct {
	ID          int            `db:"id"          json:"id"`
	Name        string         `db:"name"        json:"name"`
	Description *string        `db:"description" json:"description,omitempty"`
	IsActive    bool           `db:"is_active"   json:"is_active"`
	CreatedBy   int            `db:"created_by"  json:"created_by"`
	CreatedAt   time.Time      `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"  json:"updated_at"`
	Items       []PlaylistItem `db:"-"           json:"items,omitempty"`
}

// PlaylistItem is one source in a playlist. Position is 1-based and
// contiguous within a playlist; it defines playback order.
type PlaylistItem struct {
	ID         int       `db:"id"          json:"id"`
	PlaylistID int       `db:"playlist_id" json:"playlist_id"`
	Title      string    `db:"title"       json:"title"`
	SourceURL  string    `db:"source_url"  json:"source_url"`
	Duration   int       `db:"duration"    json:"duration"` // seconds
	Position   int       `db:"position"    json:"position"`
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
}
