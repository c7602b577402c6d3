package db

import (
	"encoding/json"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/nereus/internal/model"
)

// AppendLog writes one persistent system log row. Metadata may be nil.
func AppendLog(level model.LogLevel, message string, metadata map[string]any) error {
	var raw []byte
	if metadata != nil {
		var err error
		raw, err = json.Marshal(metadata)
		if err != nil {
			return err
		}
	}
	_, err := DB.Exec(`
	INSERT INTO system_logs (level, message, metadata, created_at)
	VALUES ($1, $2, $3, now());`, level, message, raw)
	if err != nil {
		log.Error().Err(err).Msg("AppendLog failed")
	}
	return err
}

// ListLogs returns the newest rows first; level filters when non-nil.
func ListLogs(level *model.LogLevel, limit, offset int) ([]model.SystemLog, error) {
	var out []model.SystemLog
	const q = `
	SELECT id, level, message, metadata, created_at
	  FROM system_logs
	 WHERE ($1::text IS NULL OR level = $1)
	 ORDER BY created_at DESC
	 LIMIT $2 OFFSET $3;`
	if err := DB.Select(&out, q, level, limit, offset); err != nil {
		log.Error().Err(err).Msg("ListLogs failed")
		return nil, err
	}
	return out, nil
}

func CountLogs(level *model.LogLevel) (int, error) {
	var n int
	err := DB.Get(&n, `SELECT COUNT(*) FROM system_logs WHERE ($1::text IS NULL OR level = $1);`, level)
	return n, err
}
