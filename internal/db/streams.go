package db

import (
	"database/sql"
	"errors"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/nereus/internal/model"
)

// @ MEDIA SERVERS

func CreateMediaServer(name, host string, port int, username, password string) (model.MediaServer, error) {
	var s model.MediaServer
	const q = `
	INSERT INTO media_servers (name, host, port, username, password, created_at)
	VALUES ($1, $2, $3, $4, $5, now())
	RETURNING id, name, host, port, username, password, created_at;`
	if err := DB.Get(&s, q, name, host, port, username, password); err != nil {
		log.Error().Err(err).Msg("CreateMediaServer failed")
		return model.MediaServer{}, err
	}
	return s, nil
}

func GetMediaServerByID(id int) (model.MediaServer, error) {
	var s model.MediaServer
	err := DB.Get(&s, `
	SELECT id, name, host, port, username, password, created_at
	  FROM media_servers WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("server_id", id).Msg("GetMediaServerByID failed")
	}
	return s, err
}

func ListMediaServers() ([]model.MediaServer, error) {
	var out []model.MediaServer
	const q = `SELECT id, name, host, port, username, password, created_at FROM media_servers ORDER BY id;`
	if err := DB.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("ListMediaServers failed")
		return nil, err
	}
	return out, nil
}

// @ STREAMS

func CreateStream(name, streamKey string, description *string, serverID int, createdBy int) (model.Stream, error) {
	var s model.Stream
	const q = `
	INSERT INTO streams (name, stream_key, description, server_id, is_active, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, true, $5, now(), now())
	RETURNING id, name, stream_key, description, server_id, is_active, created_by, created_at, updated_at;`
	if err := DB.Get(&s, q, name, streamKey, description, serverID, createdBy); err != nil {
		log.Error().Err(err).Msg("CreateStream failed")
		return model.Stream{}, err
	}
	return s, nil
}

func GetStreamByID(id int) (model.Stream, error) {
	var s model.Stream
	err := DB.Get(&s, `
	SELECT id, name, stream_key, description, server_id, is_active, created_by, created_at, updated_at
	  FROM streams WHERE id = $1;`, id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Int("stream_id", id).Msg("GetStreamByID failed")
		}
	}
	return s, err
}

func GetStreamByKey(streamKey string) (model.Stream, error) {
	var s model.Stream
	err := DB.Get(&s, `
	SELECT id, name, stream_key, description, server_id, is_active, created_by, created_at, updated_at
	  FROM streams WHERE stream_key = $1;`, streamKey)
	return s, err
}

func ListStreams(isActive *bool) ([]model.Stream, error) {
	var out []model.Stream
	const q = `
	SELECT id, name, stream_key, description, server_id, is_active, created_by, created_at, updated_at
	  FROM streams
	 WHERE ($1::boolean IS NULL OR is_active = $1)
	 ORDER BY created_at DESC;`
	if err := DB.Select(&out, q, isActive); err != nil {
		log.Error().Err(err).Msg("ListStreams failed")
		return nil, err
	}
	return out, nil
}

func UpdateStream(id int, name, description *string, isActive *bool) error {
	_, err := DB.Exec(`
		UPDATE streams
		SET
		name        = COALESCE($2, name),
		description = COALESCE($3, description),
		is_active   = COALESCE($4, is_active),
		updated_at  = now()
		WHERE id = $1;`,
		id, name, description, isActive,
	)
	if err != nil {
		log.Error().Err(err).Int("stream_id", id).Msg("UpdateStream failed")
	}
	return err
}

func DeleteStream(id int) error {
	_, err := DB.Exec(`DELETE FROM streams WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("stream_id", id).Msg("DeleteStream failed")
	}
	return err
}
