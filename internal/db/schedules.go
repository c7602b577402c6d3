package db

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/nereus/internal/model"
)

// @ SCHEDULES

type NewSchedule struct {
	Name             string
	Description      *string
	StartDate        time.Time
	EndDate          *time.Time
	IsRecurring      bool
	RecurringPattern *string
	IsActive         bool
	StreamID         int
	PlaylistID       *int
	CreatedBy        int
}

func CreateSchedule(in NewSchedule) (model.Schedule, error) {
	var s model.Schedule
	const q = `
	INSERT INTO schedules
	  (name, description, start_date, end_date, is_recurring, recurring_pattern,
	   is_active, stream_id, playlist_id, created_by, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now(),now())
	RETURNING id, name, description, start_date, end_date, is_recurring, recurring_pattern,
	          is_active, stream_id, playlist_id, created_by, created_at, updated_at;`
	if err := DB.Get(&s, q,
		in.Name, in.Description, in.StartDate, in.EndDate, in.IsRecurring,
		in.RecurringPattern, in.IsActive, in.StreamID, in.PlaylistID, in.CreatedBy,
	); err != nil {
		log.Error().Err(err).Msg("CreateSchedule failed")
		return model.Schedule{}, err
	}
	return s, nil
}

func GetScheduleByID(id int) (model.Schedule, error) {
	var s model.Schedule
	err := DB.Get(&s, `
	SELECT id, name, description, start_date, end_date, is_recurring, recurring_pattern,
	       is_active, stream_id, playlist_id, created_by, created_at, updated_at
	  FROM schedules WHERE id = $1;`, id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Int("schedule_id", id).Msg("GetScheduleByID failed")
		}
	}
	return s, err
}

func ListSchedules(isActive *bool) ([]model.Schedule, error) {
	var out []model.Schedule
	const q = `
	SELECT id, name, description, start_date, end_date, is_recurring, recurring_pattern,
	       is_active, stream_id, playlist_id, created_by, created_at, updated_at
	  FROM schedules
	 WHERE ($1::boolean IS NULL OR is_active = $1)
	 ORDER BY created_at DESC;`
	if err := DB.Select(&out, q, isActive); err != nil {
		log.Error().Err(err).Msg("ListSchedules failed")
		return nil, err
	}
	return out, nil
}

func UpdateSchedule(id int, name, description *string, startDate, endDate *time.Time, isActive *bool) error {
	_, err := DB.Exec(`
		UPDATE schedules
		SET
		name        = COALESCE($2, name),
		description = COALESCE($3, description),
		start_date  = COALESCE($4, start_date),
		end_date    = COALESCE($5, end_date),
		is_active   = COALESCE($6, is_active),
		updated_at  = now()
		WHERE id = $1;`,
		id, name, description, startDate, endDate, isActive,
	)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", id).Msg("UpdateSchedule failed")
	}
	return err
}

func SetScheduleActive(id int, active bool) error {
	_, err := DB.Exec(`UPDATE schedules SET is_active = $2, updated_at = now() WHERE id = $1;`, id, active)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", id).Msg("SetScheduleActive failed")
	}
	return err
}

func DeleteSchedule(id int) error {
	_, err := DB.Exec(`DELETE FROM schedules WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", id).Msg("DeleteSchedule failed")
	}
	return err
}

// @ ENGINE QUERIES

// loadScheduleRelations fills Stream, Playlist (with ordered items) and the
// schedule's pending items. pendingBefore limits pending items to those whose
// start_time is at or before the given instant; pass nil for all pending.
func loadScheduleRelations(s *model.Schedule, pendingBefore *time.Time) error {
	stream, err := GetStreamByID(s.StreamID)
	if err != nil {
		return err
	}
	s.Stream = &stream

	if s.PlaylistID != nil {
		pl, err := GetPlaylistByID(*s.PlaylistID)
		if err != nil {
			return err
		}
		s.Playlist = &pl
	}

	var items []model.ScheduleItem
	const q = `
	SELECT id, schedule_id, title, source_url, duration, position,
	       start_time, end_time, status, created_at, updated_at
	  FROM schedule_items
	 WHERE schedule_id = $1
	   AND status = 'pending'
	   AND ($2::timestamptz IS NULL OR start_time <= $2)
	 ORDER BY position;`
	if err := DB.Select(&items, q, s.ID, pendingBefore); err != nil {
		return err
	}
	s.Items = items
	return nil
}

// DueSchedules returns every active schedule whose window contains now,
// with its stream, its playlist (ordered items) and its pending items whose
// start_time has been reached.
func DueSchedules(now time.Time) ([]model.Schedule, error) {
	var out []model.Schedule
	const q = `
	SELECT id, name, description, start_date, end_date, is_recurring, recurring_pattern,
	       is_active, stream_id, playlist_id, created_by, created_at, updated_at
	  FROM schedules
	 WHERE is_active = true
	   AND start_date <= $1
	   AND (end_date IS NULL OR end_date >= $1)
	 ORDER BY id;`
	if err := DB.Select(&out, q, now); err != nil {
		log.Error().Err(err).Msg("DueSchedules failed")
		return nil, err
	}
	for i := range out {
		if err := loadScheduleRelations(&out[i], &now); err != nil {
			log.Error().Err(err).Int("schedule_id", out[i].ID).Msg("DueSchedules: loading relations failed")
			return nil, err
		}
	}
	return out, nil
}

// GetScheduleForExecution loads one schedule with its stream, playlist and
// all pending items, regardless of their start time. Used by run-now.
func GetScheduleForExecution(id int) (model.Schedule, error) {
	s, err := GetScheduleByID(id)
	if err != nil {
		return model.Schedule{}, err
	}
	if err := loadScheduleRelations(&s, nil); err != nil {
		return model.Schedule{}, err
	}
	return s, nil
}

// RecurringSchedules returns active recurring schedules that carry a pattern.
func RecurringSchedules() ([]model.Schedule, error) {
	var out []model.Schedule
	const q = `
	SELECT id, name, description, start_date, end_date, is_recurring, recurring_pattern,
	       is_active, stream_id, playlist_id, created_by, created_at, updated_at
	  FROM schedules
	 WHERE is_active = true
	   AND is_recurring = true
	   AND recurring_pattern IS NOT NULL
	 ORDER BY id;`
	if err := DB.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("RecurringSchedules failed")
		return nil, err
	}
	return out, nil
}

// CountScheduleItems returns how many items a schedule owns, in any status.
func CountScheduleItems(scheduleID int) (int, error) {
	var n int
	err := DB.Get(&n, `SELECT COUNT(*) FROM schedule_items WHERE schedule_id = $1;`, scheduleID)
	return n, err
}

// CreateScheduleItems inserts the batch in a single transaction: either every
// item lands or none do.
func CreateScheduleItems(scheduleID int, items []model.ScheduleItem) error {
	tx, err := DB.Beginx()
	if err != nil {
		return err
	}
	const q = `
	INSERT INTO schedule_items
	  (schedule_id, title, source_url, duration, position, start_time, end_time, status, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now(),now());`
	for _, it := range items {
		if _, err := tx.Exec(q,
			scheduleID, it.Title, it.SourceURL, it.Duration, it.Position,
			it.StartTime, it.EndTime, it.Status,
		); err != nil {
			_ = tx.Rollback()
			log.Error().Err(err).Int("schedule_id", scheduleID).Msg("CreateScheduleItems failed")
			return err
		}
	}
	return tx.Commit()
}

func ListScheduleItems(scheduleID int) ([]model.ScheduleItem, error) {
	var items []model.ScheduleItem
	const q = `
	SELECT id, schedule_id, title, source_url, duration, position,
	       start_time, end_time, status, created_at, updated_at
	  FROM schedule_items
	 WHERE schedule_id = $1
	 ORDER BY position;`
	if err := DB.Select(&items, q, scheduleID); err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("ListScheduleItems failed")
		return nil, err
	}
	return items, nil
}

func UpdateScheduleItemStatus(itemID int, status model.ItemStatus) error {
	_, err := DB.Exec(`
		UPDATE schedule_items SET status = $2, updated_at = now() WHERE id = $1;`,
		itemID, status,
	)
	if err != nil {
		log.Error().Err(err).Int("item_id", itemID).Msg("UpdateScheduleItemStatus failed")
	}
	return err
}
