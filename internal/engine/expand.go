package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/nereus/internal/model"
)

// expandSchedule materializes one schedule item per playlist item, anchored
// at the schedule's start date with cumulative offsets. It is a no-op when
// the schedule already owns items, which makes repeated ticks and repeated
// run-now calls safe. The batch insert is all-or-nothing: on failure the
// schedule keeps zero items and expansion is retried on the next tick.
func (e *Engine) expandSchedule(sched *model.Schedule) error {
	if sched.Playlist == nil || len(sched.Playlist.Items) == 0 {
		return nil
	}

	count, err := e.store.CountScheduleItems(sched.ID)
	if err != nil {
		return fmt.Errorf("count items for schedule %d: %w", sched.ID, err)
	}
	if count > 0 {
		return nil
	}

	items := buildScheduleItems(sched.StartDate, sched.Playlist.Items)
	if err := e.store.CreateScheduleItems(sched.ID, items); err != nil {
		return fmt.Errorf("create items for schedule %d: %w", sched.ID, err)
	}

	log.Info().
		Int("schedule_id", sched.ID).
		Int("items", len(items)).
		Msg("scheduler: expanded playlist into schedule items")
	return nil
}

// buildScheduleItems lays playlist items end to end starting at anchor:
// item i starts at anchor plus the summed durations of items 0..i-1.
func buildScheduleItems(anchor time.Time, playlistItems []model.PlaylistItem) []model.ScheduleItem {
	items := make([]model.ScheduleItem, 0, len(playlistItems))
	offset := time.Duration(0)
	for i, pi := range playlistItems {
		start := anchor.Add(offset)
		end := start.Add(time.Duration(pi.Duration) * time.Second)
		items = append(items, model.ScheduleItem{
			Title:     pi.Title,
			SourceURL: pi.SourceURL,
			Duration:  pi.Duration,
			Position:  i + 1,
			StartTime: start,
			EndTime:   end,
			Status:    model.ItemPending,
		})
		offset += time.Duration(pi.Duration) * time.Second
	}
	return items
}
