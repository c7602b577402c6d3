package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/nereus/internal/model"
)

// executeSchedule drives one due schedule: expand the playlist if the
// schedule has no items yet, then run its pending items sequentially in
// position order. Items share one output stream, so they must not race.
// Individual item failures are recorded and swallowed; only expansion or
// loading problems propagate.
func (e *Engine) executeSchedule(ctx context.Context, sched *model.Schedule) error {
	if err := e.expandSchedule(sched); err != nil {
		log.Error().Err(err).Int("schedule_id", sched.ID).Msg("scheduler: expansion failed")
		_ = e.store.AppendLog(model.LogError,
			fmt.Sprintf("failed to expand schedule %q: %v", sched.Name, err),
			map[string]any{"schedule_id": sched.ID, "schedule_name": sched.Name})
		return err
	}

	if sched.Stream == nil {
		err := fmt.Errorf("schedule %d has no stream loaded", sched.ID)
		log.Error().Err(err).Msg("scheduler: cannot execute")
		_ = e.store.AppendLog(model.LogError, err.Error(),
			map[string]any{"schedule_id": sched.ID})
		return err
	}

	for i := range sched.Items {
		if sched.Items[i].Status != model.ItemPending {
			continue
		}
		e.executeItem(ctx, sched, &sched.Items[i])
	}

	return nil
}

// executeItem walks one item through its lifecycle:
// pending -> running -> completed on success, failed on any error. The
// running transition is persisted before the remote call so it survives a
// crash mid-call. A failed item is terminal; it is never retried.
func (e *Engine) executeItem(ctx context.Context, sched *model.Schedule, item *model.ScheduleItem) {
	if err := e.store.UpdateScheduleItemStatus(item.ID, model.ItemRunning); err != nil {
		log.Error().Err(err).Int("item_id", item.ID).Msg("scheduler: failed to mark item running")
		return
	}
	item.Status = model.ItemRunning
	e.publish(sched, item, "item_started", nil)

	playCtx, cancel := context.WithTimeout(ctx, e.playTimeout)
	err := e.playout.Play(playCtx, *sched.Stream, item.SourceURL)
	cancel()

	meta := map[string]any{
		"schedule_id":      sched.ID,
		"schedule_item_id": item.ID,
		"title":            item.Title,
	}

	if err != nil {
		if statusErr := e.store.UpdateScheduleItemStatus(item.ID, model.ItemFailed); statusErr != nil {
			log.Error().Err(statusErr).Int("item_id", item.ID).Msg("scheduler: failed to mark item failed")
		}
		item.Status = model.ItemFailed
		log.Error().Err(err).
			Int("schedule_id", sched.ID).
			Int("item_id", item.ID).
			Str("title", item.Title).
			Msg("scheduler: playout failed")
		_ = e.store.AppendLog(model.LogError,
			fmt.Sprintf("failed to play %q on stream %q: %v", item.Title, sched.Stream.StreamKey, err), meta)
		e.publish(sched, item, "item_failed", err)
		return
	}

	if err := e.store.UpdateScheduleItemStatus(item.ID, model.ItemCompleted); err != nil {
		log.Error().Err(err).Int("item_id", item.ID).Msg("scheduler: failed to mark item completed")
		return
	}
	item.Status = model.ItemCompleted
	log.Info().
		Int("schedule_id", sched.ID).
		Int("item_id", item.ID).
		Str("title", item.Title).
		Msg("scheduler: item completed")
	_ = e.store.AppendLog(model.LogInfo,
		fmt.Sprintf("played %q on stream %q", item.Title, sched.Stream.StreamKey), meta)
	e.publish(sched, item, "item_completed", nil)
}

func (e *Engine) publish(sched *model.Schedule, item *model.ScheduleItem, event string, cause error) {
	if e.events == nil || sched.Stream == nil {
		return
	}
	ev := PlayoutEvent{
		Event:      event,
		ScheduleID: sched.ID,
		At:         e.clock.Now(),
	}
	if item != nil {
		ev.ItemID = item.ID
		ev.Title = item.Title
	}
	if cause != nil {
		ev.Error = cause.Error()
	}
	e.events.PublishPlayout(sched.Stream.StreamKey, ev)
}
