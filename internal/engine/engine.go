// Package engine runs persisted playout schedules against a remote media
// server: on every tick it finds due schedules, materializes playlist items
// onto their timelines, pushes pending items to the media server and spawns
// fresh instances of recurring schedules.
package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/nereus/internal/db"
	"github.com/Nixie-Tech-LLC/nereus/internal/model"
)

// ErrScheduleNotFound is returned by RunNow for an unknown schedule id.
var ErrScheduleNotFound = errors.New("schedule not found")

// Store is the slice of db.Store the engine needs. The Postgres store
// satisfies it; tests plug in an in-memory fake.
type Store interface {
	DueSchedules(now time.Time) ([]model.Schedule, error)
	GetScheduleForExecution(id int) (model.Schedule, error)
	RecurringSchedules() ([]model.Schedule, error)
	CountScheduleItems(scheduleID int) (int, error)
	CreateScheduleItems(scheduleID int, items []model.ScheduleItem) error
	UpdateScheduleItemStatus(itemID int, status model.ItemStatus) error
	CreateSchedule(in db.NewSchedule) (model.Schedule, error)
	AppendLog(level model.LogLevel, message string, metadata map[string]any) error
}

// PlayoutClient pushes a "play this source on this stream" command to the
// remote media server. The call blocks until the server acknowledges or the
// context expires; it is the engine's only network boundary.
type PlayoutClient interface {
	Play(ctx context.Context, stream model.Stream, sourceURL string) error
}

// Publisher receives playout lifecycle events for live dashboard feeds.
type Publisher interface {
	PublishPlayout(streamKey string, event PlayoutEvent)
}

// PlayoutEvent is the payload published on every item transition.
type PlayoutEvent struct {
	Event      string    `json:"event"` // item_started | item_completed | item_failed | schedule_spawned
	ScheduleID int       `json:"schedule_id"`
	ItemID     int       `json:"item_id,omitempty"`
	Title      string    `json:"title,omitempty"`
	Error      string    `json:"error,omitempty"`
	At         time.Time `json:"at"`
}

// Status is the engine's externally visible state.
type Status struct {
	Running   bool      `json:"running"`
	LastCheck time.Time `json:"last_check"`
}

// Options tune an Engine. Zero values fall back to defaults.
type Options struct {
	TickInterval time.Duration // default 1 minute
	PlayTimeout  time.Duration // default 15 seconds
	Clock        Clock         // default system clock
	Events       Publisher     // optional, may be nil
}

const (
	defaultTickInterval = time.Minute
	defaultPlayTimeout  = 15 * time.Second

	// A recurring schedule fires again once this much time has passed since
	// its own start date. The stored pattern string is only checked for
	// presence; it is not parsed as cron.
	recurrenceInterval = 24 * time.Hour
)

// Engine is the schedule execution loop. Construct with New, drive with
// Start/Stop; all durable state lives in the store, the engine itself only
// keeps the running flag, the timer and the last check time.
type Engine struct {
	store   Store
	playout PlayoutClient
	events  Publisher
	clock   Clock

	interval    time.Duration
	playTimeout time.Duration

	mu        sync.Mutex // guards running, cancel, lastCheck
	running   bool
	cancel    context.CancelFunc
	lastCheck time.Time

	runMu sync.Mutex // serializes execution passes (tick vs tick, tick vs RunNow)
}

func New(store Store, playout PlayoutClient, opts Options) *Engine {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.PlayTimeout <= 0 {
		opts.PlayTimeout = defaultPlayTimeout
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}
	return &Engine{
		store:       store,
		playout:     playout,
		events:      opts.Events,
		clock:       opts.Clock,
		interval:    opts.TickInterval,
		playTimeout: opts.PlayTimeout,
	}
}

// Start runs one pass immediately, then arms the periodic timer. Calling
// Start on a running engine is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		log.Info().Msg("scheduler already running")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.running = true
	e.cancel = cancel
	e.mu.Unlock()

	log.Info().Dur("interval", e.interval).Msg("scheduler started")
	e.checkAndExecute(context.Background())

	go e.loop(ctx)
}

// Stop disarms the timer. A pass already underway runs to completion.
// Calling Stop on a stopped engine is a no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		log.Info().Msg("scheduler is not running")
		return
	}
	e.cancel()
	e.cancel = nil
	e.running = false
	log.Info().Msg("scheduler stopped")
}

// Status never fails.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{Running: e.running, LastCheck: e.lastCheck}
}

// RunNow executes one schedule synchronously, independent of the timer.
// Returns ErrScheduleNotFound for an unknown id. Item failures are recorded
// in the store, not returned. The schedule is loaded under the run lock so
// the snapshot cannot go stale while a tick finishes the same items.
func (e *Engine) RunNow(ctx context.Context, scheduleID int) error {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	sched, err := e.store.GetScheduleForExecution(scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: id %d", ErrScheduleNotFound, scheduleID)
		}
		return fmt.Errorf("load schedule %d: %w", scheduleID, err)
	}

	return e.executeSchedule(ctx, &sched)
}

// loop waits on the ticker under ctx. Passes themselves run on a background
// context: cancellation only disarms the timer, a pass already underway is
// never aborted mid-play.
func (e *Engine) loop(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.checkAndExecute(context.Background())
		}
	}
}

// checkAndExecute is one tick: query due schedules, drive each one, then
// evaluate recurrences. Every failure is contained here; a bad tick never
// disarms the timer.
func (e *Engine) checkAndExecute(ctx context.Context) {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	now := e.clock.Now()
	e.mu.Lock()
	e.lastCheck = now
	e.mu.Unlock()

	schedules, err := e.store.DueSchedules(now)
	if err != nil {
		log.Error().Err(err).Msg("scheduler: querying due schedules failed")
		_ = e.store.AppendLog(model.LogError, "scheduler: querying due schedules failed: "+err.Error(), nil)
	} else {
		for i := range schedules {
			if err := e.executeSchedule(ctx, &schedules[i]); err != nil {
				// already logged; keep going so one schedule cannot
				// starve its siblings
				continue
			}
		}
	}

	e.generateRecurrences(now)
}
