package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/nereus/internal/db"
	"github.com/Nixie-Tech-LLC/nereus/internal/model"
)

// generateRecurrences spawns a fresh one-shot schedule for every recurring
// schedule that is due again. The recurring row itself is never mutated, so
// the due check always measures from the original anchor. One schedule's
// failure does not stop evaluation of the rest.
func (e *Engine) generateRecurrences(now time.Time) {
	recurring, err := e.store.RecurringSchedules()
	if err != nil {
		log.Error().Err(err).Msg("scheduler: querying recurring schedules failed")
		_ = e.store.AppendLog(model.LogError, "scheduler: querying recurring schedules failed: "+err.Error(), nil)
		return
	}

	for i := range recurring {
		sched := &recurring[i]
		if !e.recurrenceDue(sched, now) {
			continue
		}
		if err := e.spawnInstance(sched, now); err != nil {
			log.Error().Err(err).Int("schedule_id", sched.ID).Msg("scheduler: spawning recurring instance failed")
			_ = e.store.AppendLog(model.LogError,
				fmt.Sprintf("failed to spawn instance of recurring schedule %q: %v", sched.Name, err),
				map[string]any{"schedule_id": sched.ID})
		}
	}
}

// recurrenceDue reports whether a recurring schedule should fire again: at
// least 24 hours must have passed since its start date. This is a coarse
// elapsed-time heuristic; the stored pattern string is intentionally not
// parsed. A schedule without a pattern never fires.
func (e *Engine) recurrenceDue(sched *model.Schedule, now time.Time) bool {
	if sched.RecurringPattern == nil || *sched.RecurringPattern == "" {
		return false
	}
	return now.Sub(sched.StartDate) >= recurrenceInterval
}

// spawnInstance creates the independent, non-recurring copy that future
// ticks will pick up and expand like any other schedule.
func (e *Engine) spawnInstance(sched *model.Schedule, now time.Time) error {
	instance, err := e.store.CreateSchedule(db.NewSchedule{
		Name:        fmt.Sprintf("%s - %s", sched.Name, now.UTC().Format(time.RFC3339)),
		Description: sched.Description,
		StartDate:   now,
		IsRecurring: false,
		IsActive:    true,
		StreamID:    sched.StreamID,
		PlaylistID:  sched.PlaylistID,
		CreatedBy:   sched.CreatedBy,
	})
	if err != nil {
		return err
	}

	log.Info().
		Int("schedule_id", sched.ID).
		Int("instance_id", instance.ID).
		Msg("scheduler: created recurring schedule instance")
	_ = e.store.AppendLog(model.LogInfo, "created recurring schedule instance", map[string]any{
		"original_schedule_id": sched.ID,
		"new_schedule_id":      instance.ID,
		"run_time":             now.UTC().Format(time.RFC3339),
	})

	if e.events != nil && sched.Stream != nil {
		e.events.PublishPlayout(sched.Stream.StreamKey, PlayoutEvent{
			Event:      "schedule_spawned",
			ScheduleID: instance.ID,
			At:         now,
		})
	}
	return nil
}
