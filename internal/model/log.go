package model

import (
	"encoding/json"
	"time"
)

type LogLevel string

const (
	LogInfo    LogLevel = "info"
	LogWarning LogLevel = "warning"
	LogError   LogLevel = "error"
)

// SystemLog is a persistent log row; the engine writes one for every
// completed or failed playout action.
type SystemLog struct {
	ID        int             `db:"id"         json:"id"`
	Level     LogLevel        `db:"level"      json:"level"`
	Message   string          `db:"message"    json:"message"`
	Metadata  json.RawMessage `db:"metadata"   json:"metadata,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
