package model

import "time"

// MediaServer is a remote streaming server the dashboard drives over HTTP.
type MediaServer struct {
	ID        int       `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	Host      string    `db:"host"       json:"host"`
	Port      int       `db:"port"       json:"port"`
	Username  string    `db:"username"   json:"-"`
	Password  string    `db:"password"   json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Stream is a named output channel on a media server.
type Stream struct {
	ID          int       `db:"id"          json:"id"`
	Name        string    `db:"name"        json:"name"`
	StreamKey   string    `db:"stream_key"  json:"stream_key"`
	Description *string   `db:"description" json:"description,omitempty"`
	ServerID    int       `db:"server_id"   json:"server_id"`
	IsActive    bool      `db:"is_active"   json:"is_active"`
	CreatedBy   int       `db:"created_by"  json:"created_by"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"  json:"updated_at"`
}
