package db

import (
	"database/sql"
	"errors"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/nereus/internal/model"
)

// @ PLAYLIST

func CreatePlaylist(name string, description *string, createdBy int) (model.Playlist, error) {
	var p model.Playlist
	const q = `
	INSERT INTO playlists (name, description, is_active, created_by, created_at, updated_at)
	VALUES ($1, $2, true, $3, now(), now())
	RETURNING id, name, description, is_active, created_by, created_at, updated_at;
	`
	if err := DB.Get(&p, q, name, description, createdBy); err != nil {
		log.Error().Err(err).Msg("[db] CreatePlaylist: failed to insert playlist")
		return model.Playlist{}, err
	}
	return p, nil
}

func GetPlaylistByID(id int) (model.Playlist, error) {
	var p model.Playlist
	const q = `
	SELECT id, name, description, is_active, created_by, created_at, updated_at
	  FROM playlists
	 WHERE id = $1;`
	if err := DB.Get(&p, q, id); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Msg("failed to get playlist by ID")
		}
		return model.Playlist{}, err
	}

	items, err := ListPlaylistItems(id)
	if err != nil {
		return p, err
	}
	p.Items = items
	return p, nil
}

func ListPlaylists(isActive *bool) ([]model.Playlist, error) {
	var out []model.Playlist
	const q = `
	SELECT id, name, description, is_active, created_by, created_at, updated_at
	  FROM playlists
	 WHERE ($1::boolean IS NULL OR is_active = $1)
	 ORDER BY created_at DESC;`
	if err := DB.Select(&out, q, isActive); err != nil {
		log.Error().Err(err).Msg("[db] ListPlaylists: failed to select playlists")
		return nil, err
	}

	for i := range out {
		items, err := ListPlaylistItems(out[i].ID)
		if err != nil {
			log.Error().Err(err).Msgf("[db] ListPlaylists: failed to load items for playlist %d", out[i].ID)
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func UpdatePlaylist(id int, name, description *string, isActive *bool) error {
	_, err := DB.Exec(`
		UPDATE playlists
		SET
		name        = COALESCE($2, name),
		description = COALESCE($3, description),
		is_active   = COALESCE($4, is_active),
		updated_at  = now()
		WHERE id = $1;`,
		id, name, description, isActive,
	)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("UpdatePlaylist failed")
	}
	return err
}

func DeletePlaylist(id int) error {
	_, err := DB.Exec(`DELETE FROM playlists WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("DeletePlaylist failed")
	}
	return err
}

// @ PLAYLIST ITEMS

func ListPlaylistItems(playlistID int) ([]model.PlaylistItem, error) {
	var items []model.PlaylistItem
	const q = `
	SELECT id, playlist_id, title, source_url, duration, position, created_at
	  FROM playlist_items
	 WHERE playlist_id = $1
	 ORDER BY position;`
	if err := DB.Select(&items, q, playlistID); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("ListPlaylistItems failed")
		return nil, err
	}
	return items, nil
}

// AddPlaylistItem appends an item at the end of the playlist (next position).
func AddPlaylistItem(playlistID int, title, sourceURL string, duration int) (model.PlaylistItem, error) {
	var it model.PlaylistItem
	const q = `
	INSERT INTO playlist_items (playlist_id, title, source_url, duration, position, created_at)
	VALUES ($1, $2, $3, $4,
	        (SELECT COALESCE(MAX(position), 0) + 1 FROM playlist_items WHERE playlist_id = $1),
	        now())
	RETURNING id, playlist_id, title, source_url, duration, position, created_at;`
	if err := DB.Get(&it, q, playlistID, title, sourceURL, duration); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("AddPlaylistItem failed")
		return model.PlaylistItem{}, err
	}
	return it, nil
}

func UpdatePlaylistItem(itemID int, title, sourceURL *string, duration *int) error {
	_, err := DB.Exec(`
		UPDATE playlist_items
		SET
		title      = COALESCE($2, title),
		source_url = COALESCE($3, source_url),
		duration   = COALESCE($4, duration)
		WHERE id = $1;`,
		itemID, title, sourceURL, duration,
	)
	if err != nil {
		log.Error().Err(err).Int("item_id", itemID).Msg("UpdatePlaylistItem failed")
	}
	return err
}

func RemovePlaylistItem(itemID int) error {
	_, err := DB.Exec(`DELETE FROM playlist_items WHERE id = $1;`, itemID)
	if err != nil {
		log.Error().Err(err).Int("item_id", itemID).Msg("RemovePlaylistItem failed")
	}
	return err
}

// ReorderPlaylistItems rewrites positions to match the given item ID order.
// The whole reorder runs in one transaction so positions stay contiguous.
func ReorderPlaylistItems(playlistID int, itemIDs []int) error {
	tx, err := DB.Beginx()
	if err != nil {
		return err
	}
	for i, itemID := range itemIDs {
		if _, err := tx.Exec(`
			UPDATE playlist_items SET position = $1
			 WHERE id = $2 AND playlist_id = $3;`,
			i+1, itemID, playlistID,
		); err != nil {
			_ = tx.Rollback()
			log.Error().Err(err).Int("playlist_id", playlistID).Msg("ReorderPlaylistItems failed")
			return err
		}
	}
	return tx.Commit()
}
