package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/nereus/internal/db"
	"github.com/Nixie-Tech-LLC/nereus/internal/model"
)

// testClock is a Clock pinned to a settable instant.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(now time.Time) *testClock { return &testClock{now: now} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

type appendedLog struct {
	level    model.LogLevel
	message  string
	metadata map[string]any
}

// fakeStore mirrors the Postgres store's query semantics in memory.
type fakeStore struct {
	mu        sync.Mutex
	schedules map[int]*model.Schedule
	items     map[int][]model.ScheduleItem
	logs      []appendedLog
	nextSched int
	nextItem  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		schedules: make(map[int]*model.Schedule),
		items:     make(map[int][]model.ScheduleItem),
		nextSched: 1,
		nextItem:  1,
	}
}

func (f *fakeStore) addSchedule(s model.Schedule) *model.Schedule {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = f.nextSched
	f.nextSched++
	f.schedules[s.ID] = &s
	return &s
}

func (f *fakeStore) DueSchedules(now time.Time) ([]model.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Schedule
	for _, s := range f.schedules {
		if !s.IsActive || s.StartDate.After(now) {
			continue
		}
		if s.EndDate != nil && s.EndDate.Before(now) {
			continue
		}
		cp := *s
		cp.Items = f.pendingItemsLocked(s.ID, &now)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetScheduleForExecution(id int) (model.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.schedules[id]
	if !ok {
		return model.Schedule{}, sql.ErrNoRows
	}
	cp := *s
	cp.Items = f.pendingItemsLocked(id, nil)
	return cp, nil
}

func (f *fakeStore) pendingItemsLocked(scheduleID int, before *time.Time) []model.ScheduleItem {
	var out []model.ScheduleItem
	for _, it := range f.items[scheduleID] {
		if it.Status != model.ItemPending {
			continue
		}
		if before != nil && it.StartTime.After(*before) {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (f *fakeStore) RecurringSchedules() ([]model.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Schedule
	for _, s := range f.schedules {
		if s.IsActive && s.IsRecurring && s.RecurringPattern != nil {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) CountScheduleItems(scheduleID int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items[scheduleID]), nil
}

func (f *fakeStore) CreateScheduleItems(scheduleID int, items []model.ScheduleItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range items {
		it.ID = f.nextItem
		f.nextItem++
		it.ScheduleID = scheduleID
		f.items[scheduleID] = append(f.items[scheduleID], it)
	}
	return nil
}

func (f *fakeStore) UpdateScheduleItemStatus(itemID int, status model.ItemStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for sid := range f.items {
		for i := range f.items[sid] {
			if f.items[sid][i].ID == itemID {
				f.items[sid][i].Status = status
				return nil
			}
		}
	}
	return fmt.Errorf("item %d not found", itemID)
}

func (f *fakeStore) CreateSchedule(in db.NewSchedule) (model.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := model.Schedule{
		ID:               f.nextSched,
		Name:             in.Name,
		Description:      in.Description,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		IsRecurring:      in.IsRecurring,
		RecurringPattern: in.RecurringPattern,
		IsActive:         in.IsActive,
		StreamID:         in.StreamID,
		PlaylistID:       in.PlaylistID,
	}
	f.nextSched++
	f.schedules[s.ID] = &s
	return s, nil
}

func (f *fakeStore) AppendLog(level model.LogLevel, message string, metadata map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, appendedLog{level: level, message: message, metadata: metadata})
	return nil
}

func (f *fakeStore) itemsFor(scheduleID int) []model.ScheduleItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.ScheduleItem, len(f.items[scheduleID]))
	copy(out, f.items[scheduleID])
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (f *fakeStore) logsWithLevel(level model.LogLevel) []appendedLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []appendedLog
	for _, l := range f.logs {
		if l.level == level {
			out = append(out, l)
		}
	}
	return out
}

type playCall struct {
	streamKey string
	sourceURL string
}

// fakePlayout records calls and fails sources listed in failOn.
type fakePlayout struct {
	mu      sync.Mutex
	calls   []playCall
	failOn  map[string]error
	observe func(sourceURL string)
}

func newFakePlayout() *fakePlayout {
	return &fakePlayout{failOn: make(map[string]error)}
}

func (p *fakePlayout) Play(ctx context.Context, stream model.Stream, sourceURL string) error {
	p.mu.Lock()
	p.calls = append(p.calls, playCall{streamKey: stream.StreamKey, sourceURL: sourceURL})
	obs := p.observe
	p.mu.Unlock()
	if obs != nil {
		obs(sourceURL)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := p.failOn[sourceURL]; ok {
		return err
	}
	return nil
}

func (p *fakePlayout) playedSources() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.calls))
	for _, c := range p.calls {
		out = append(out, c.sourceURL)
	}
	return out
}

// capturePublisher records every published event.
type capturePublisher struct {
	mu     sync.Mutex
	events []PlayoutEvent
	topics []string
}

func (c *capturePublisher) PublishPlayout(streamKey string, event PlayoutEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics = append(c.topics, streamKey)
	c.events = append(c.events, event)
}

func (c *capturePublisher) names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.events))
	for _, e := range c.events {
		out = append(out, e.Event)
	}
	return out
}

var testAnchor = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func testStream() *model.Stream {
	return &model.Stream{ID: 1, Name: "Main", StreamKey: "main", ServerID: 1, IsActive: true}
}

func testPlaylist() *model.Playlist {
	return &model.Playlist{
		ID:   1,
		Name: "Morning Block",
		Items: []model.PlaylistItem{
			{ID: 1, PlaylistID: 1, Title: "Headlines", SourceURL: "vod/headlines.mp4", Duration: 300, Position: 1},
			{ID: 2, PlaylistID: 1, Title: "Weather", SourceURL: "vod/weather.mp4", Duration: 180, Position: 2},
		},
	}
}

func newTestEngine(store Store, playout PlayoutClient, clock Clock, events Publisher) *Engine {
	return New(store, playout, Options{
		TickInterval: time.Hour, // ticks are driven manually in tests
		PlayTimeout:  time.Second,
		Clock:        clock,
		Events:       events,
	})
}

func TestBuildScheduleItemsContiguousTimeline(t *testing.T) {
	items := buildScheduleItems(testAnchor, testPlaylist().Items)
	require.Len(t, items, 2)

	assert.Equal(t, "Headlines", items[0].Title)
	assert.Equal(t, 1, items[0].Position)
	assert.Equal(t, testAnchor, items[0].StartTime)
	assert.Equal(t, testAnchor.Add(5*time.Minute), items[0].EndTime)
	assert.Equal(t, model.ItemPending, items[0].Status)

	assert.Equal(t, "Weather", items[1].Title)
	assert.Equal(t, 2, items[1].Position)
	assert.Equal(t, items[0].EndTime, items[1].StartTime)
	assert.Equal(t, testAnchor.Add(8*time.Minute), items[1].EndTime)
}

func TestBuildScheduleItemsEmptyPlaylist(t *testing.T) {
	assert.Empty(t, buildScheduleItems(testAnchor, nil))
}

func TestRunNowExpandsOnce(t *testing.T) {
	store := newFakeStore()
	playout := newFakePlayout()
	clock := newTestClock(testAnchor)
	eng := newTestEngine(store, playout, clock, nil)

	pl := testPlaylist()
	sched := store.addSchedule(model.Schedule{
		Name:      "Morning",
		StartDate: testAnchor,
		IsActive:  true,
		StreamID:  1,
		Stream:    testStream(),
		Playlist:  pl,
	})

	require.NoError(t, eng.RunNow(context.Background(), sched.ID))
	first := store.itemsFor(sched.ID)
	require.Len(t, first, 2)
	// items created in this pass run on the next one
	assert.Empty(t, playout.playedSources())

	require.NoError(t, eng.RunNow(context.Background(), sched.ID))
	second := store.itemsFor(sched.ID)
	require.Len(t, second, 2, "expansion must not duplicate items")
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, []string{"vod/headlines.mp4", "vod/weather.mp4"}, playout.playedSources())
}

func TestRunNowUnknownSchedule(t *testing.T) {
	eng := newTestEngine(newFakeStore(), newFakePlayout(), newTestClock(testAnchor), nil)
	err := eng.RunNow(context.Background(), 42)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestRunNowNoPlaylist(t *testing.T) {
	store := newFakeStore()
	playout := newFakePlayout()
	eng := newTestEngine(store, playout, newTestClock(testAnchor), nil)

	sched := store.addSchedule(model.Schedule{
		Name:      "Empty",
		StartDate: testAnchor,
		IsActive:  true,
		StreamID:  1,
		Stream:    testStream(),
	})

	require.NoError(t, eng.RunNow(context.Background(), sched.ID))
	assert.Empty(t, store.itemsFor(sched.ID))
	assert.Empty(t, playout.playedSources())
}

func TestExecuteCompletesItemsInOrder(t *testing.T) {
	store := newFakeStore()
	playout := newFakePlayout()
	events := &capturePublisher{}
	eng := newTestEngine(store, playout, newTestClock(testAnchor), events)

	sched := store.addSchedule(model.Schedule{
		Name:      "Morning",
		StartDate: testAnchor,
		IsActive:  true,
		StreamID:  1,
		Stream:    testStream(),
		Playlist:  testPlaylist(),
	})
	require.NoError(t, eng.RunNow(context.Background(), sched.ID)) // expand
	require.NoError(t, eng.RunNow(context.Background(), sched.ID)) // play

	items := store.itemsFor(sched.ID)
	require.Len(t, items, 2)
	assert.Equal(t, model.ItemCompleted, items[0].Status)
	assert.Equal(t, model.ItemCompleted, items[1].Status)

	assert.Equal(t, []string{"vod/headlines.mp4", "vod/weather.mp4"}, playout.playedSources())
	assert.Equal(t, []string{"item_started", "item_completed", "item_started", "item_completed"}, events.names())

	infos := store.logsWithLevel(model.LogInfo)
	require.Len(t, infos, 2)
	assert.Contains(t, infos[0].message, "Headlines")
	assert.Contains(t, infos[0].message, "main")
}

func TestRunningPersistedBeforePlayout(t *testing.T) {
	store := newFakeStore()
	playout := newFakePlayout()
	eng := newTestEngine(store, playout, newTestClock(testAnchor), nil)

	sched := store.addSchedule(model.Schedule{
		Name:      "Morning",
		StartDate: testAnchor,
		IsActive:  true,
		StreamID:  1,
		Stream:    testStream(),
		Playlist:  testPlaylist(),
	})
	require.NoError(t, eng.RunNow(context.Background(), sched.ID))

	seen := make(map[string]model.ItemStatus)
	playout.observe = func(sourceURL string) {
		for _, it := range store.itemsFor(sched.ID) {
			if it.SourceURL == sourceURL {
				seen[sourceURL] = it.Status
			}
		}
	}
	require.NoError(t, eng.RunNow(context.Background(), sched.ID))

	assert.Equal(t, model.ItemRunning, seen["vod/headlines.mp4"])
	assert.Equal(t, model.ItemRunning, seen["vod/weather.mp4"])
}

func TestPlayoutFailureIsTerminal(t *testing.T) {
	store := newFakeStore()
	playout := newFakePlayout()
	playout.failOn["vod/headlines.mp4"] = errors.New("stream offline")
	events := &capturePublisher{}
	eng := newTestEngine(store, playout, newTestClock(testAnchor), events)

	sched := store.addSchedule(model.Schedule{
		Name:      "Morning",
		StartDate: testAnchor,
		IsActive:  true,
		StreamID:  1,
		Stream:    testStream(),
		Playlist:  testPlaylist(),
	})
	require.NoError(t, eng.RunNow(context.Background(), sched.ID))
	require.NoError(t, eng.RunNow(context.Background(), sched.ID))

	items := store.itemsFor(sched.ID)
	require.Len(t, items, 2)
	assert.Equal(t, model.ItemFailed, items[0].Status)
	assert.Equal(t, model.ItemCompleted, items[1].Status, "a failed item must not block the rest")

	errLogs := store.logsWithLevel(model.LogError)
	require.Len(t, errLogs, 1)
	assert.Contains(t, errLogs[0].message, "stream offline")

	assert.Contains(t, events.names(), "item_failed")

	// a failed item stays failed: further passes skip it
	require.NoError(t, eng.RunNow(context.Background(), sched.ID))
	items = store.itemsFor(sched.ID)
	assert.Equal(t, model.ItemFailed, items[0].Status)
	assert.Equal(t, []string{"vod/headlines.mp4", "vod/weather.mp4"}, playout.playedSources())
}

func TestMissingStreamIsLoggedAndSkipped(t *testing.T) {
	store := newFakeStore()
	playout := newFakePlayout()
	clock := newTestClock(testAnchor)
	eng := newTestEngine(store, playout, clock, nil)

	store.addSchedule(model.Schedule{
		Name:      "Broken",
		StartDate: testAnchor,
		IsActive:  true,
		StreamID:  9,
	})
	healthy := store.addSchedule(model.Schedule{
		Name:      "Morning",
		StartDate: testAnchor,
		IsActive:  true,
		StreamID:  1,
		Stream:    testStream(),
		Playlist:  testPlaylist(),
	})

	eng.checkAndExecute(context.Background())

	// the broken schedule must not starve the healthy one
	assert.Len(t, store.itemsFor(healthy.ID), 2)
	require.NotEmpty(t, store.logsWithLevel(model.LogError))
}

func TestDueFilterRespectsWindow(t *testing.T) {
	store := newFakeStore()
	playout := newFakePlayout()
	clock := newTestClock(testAnchor)
	eng := newTestEngine(store, playout, clock, nil)

	future := store.addSchedule(model.Schedule{
		Name:      "Tonight",
		StartDate: testAnchor.Add(12 * time.Hour),
		IsActive:  true,
		StreamID:  1,
		Stream:    testStream(),
		Playlist:  testPlaylist(),
	})
	ended := testAnchor.Add(-time.Hour)
	expired := store.addSchedule(model.Schedule{
		Name:      "Yesterday",
		StartDate: testAnchor.Add(-24 * time.Hour),
		EndDate:   &ended,
		IsActive:  true,
		StreamID:  1,
		Stream:    testStream(),
		Playlist:  testPlaylist(),
	})
	inactive := store.addSchedule(model.Schedule{
		Name:      "Paused",
		StartDate: testAnchor,
		IsActive:  false,
		StreamID:  1,
		Stream:    testStream(),
		Playlist:  testPlaylist(),
	})

	eng.checkAndExecute(context.Background())

	assert.Empty(t, store.itemsFor(future.ID))
	assert.Empty(t, store.itemsFor(expired.ID))
	assert.Empty(t, store.itemsFor(inactive.ID))
	assert.Empty(t, playout.playedSources())
}

func TestStartStopIdempotent(t *testing.T) {
	store := newFakeStore()
	eng := newTestEngine(store, newFakePlayout(), newTestClock(testAnchor), nil)

	assert.False(t, eng.Status().Running)

	eng.Start()
	eng.Start()
	assert.True(t, eng.Status().Running)
	assert.Equal(t, testAnchor, eng.Status().LastCheck)

	eng.Stop()
	eng.Stop()
	assert.False(t, eng.Status().Running)
}

func TestStartRunsImmediatePass(t *testing.T) {
	store := newFakeStore()
	playout := newFakePlayout()
	eng := newTestEngine(store, playout, newTestClock(testAnchor), nil)

	sched := store.addSchedule(model.Schedule{
		Name:      "Morning",
		StartDate: testAnchor,
		IsActive:  true,
		StreamID:  1,
		Stream:    testStream(),
		Playlist:  testPlaylist(),
	})

	eng.Start()
	defer eng.Stop()

	// Start's first pass is synchronous, so the expansion is visible here.
	assert.Len(t, store.itemsFor(sched.ID), 2)
}

func TestRecurrenceDue(t *testing.T) {
	eng := newTestEngine(newFakeStore(), newFakePlayout(), newTestClock(testAnchor), nil)
	pattern := "daily"
	sched := &model.Schedule{StartDate: testAnchor, RecurringPattern: &pattern}

	assert.False(t, eng.recurrenceDue(sched, testAnchor.Add(23*time.Hour+59*time.Minute)))
	assert.True(t, eng.recurrenceDue(sched, testAnchor.Add(24*time.Hour)))
	assert.True(t, eng.recurrenceDue(sched, testAnchor.Add(48*time.Hour)))

	noPattern := &model.Schedule{StartDate: testAnchor}
	assert.False(t, eng.recurrenceDue(noPattern, testAnchor.Add(48*time.Hour)))
}

func TestRecurringScheduleSpawnsInstance(t *testing.T) {
	store := newFakeStore()
	clock := newTestClock(testAnchor.Add(24 * time.Hour))
	eng := newTestEngine(store, newFakePlayout(), clock, nil)

	pattern := "daily"
	playlistID := 1
	parent := store.addSchedule(model.Schedule{
		Name:             "Nightly",
		StartDate:        testAnchor,
		IsRecurring:      true,
		RecurringPattern: &pattern,
		IsActive:         true,
		StreamID:         1,
		PlaylistID:       &playlistID,
	})

	eng.generateRecurrences(clock.Now())

	var spawned *model.Schedule
	store.mu.Lock()
	for _, s := range store.schedules {
		if s.ID != parent.ID {
			spawned = s
		}
	}
	store.mu.Unlock()

	require.NotNil(t, spawned, "expected a spawned instance")
	assert.Equal(t, "Nightly - "+clock.Now().UTC().Format(time.RFC3339), spawned.Name)
	assert.False(t, spawned.IsRecurring)
	assert.True(t, spawned.IsActive)
	assert.Equal(t, clock.Now(), spawned.StartDate)
	assert.Equal(t, parent.StreamID, spawned.StreamID)
	assert.Equal(t, parent.PlaylistID, spawned.PlaylistID)

	infos := store.logsWithLevel(model.LogInfo)
	require.Len(t, infos, 1)
	assert.Equal(t, parent.ID, infos[0].metadata["original_schedule_id"])
	assert.Equal(t, spawned.ID, infos[0].metadata["new_schedule_id"])
}

func TestBuildScheduleItemsZeroDuration(t *testing.T) {
	playlistItems := []model.PlaylistItem{
		{ID: 1, Title: "Slate", SourceURL: "vod/slate.mp4", Duration: 0, Position: 1},
		{ID: 2, Title: "Headlines", SourceURL: "vod/headlines.mp4", Duration: 300, Position: 2},
	}
	items := buildScheduleItems(testAnchor, playlistItems)
	require.Len(t, items, 2)

	assert.Equal(t, testAnchor, items[0].StartTime)
	assert.Equal(t, testAnchor, items[0].EndTime)
	assert.Equal(t, testAnchor, items[1].StartTime, "zero-length item must not shift the timeline")
	assert.Equal(t, testAnchor.Add(5*time.Minute), items[1].EndTime)
}

func TestRunNowDoesNotReplayItemsFinishedByTick(t *testing.T) {
	store := newFakeStore()
	playout := newFakePlayout()
	eng := newTestEngine(store, playout, newTestClock(testAnchor), nil)

	sched := store.addSchedule(model.Schedule{
		Name:      "Morning",
		StartDate: testAnchor,
		IsActive:  true,
		StreamID:  1,
		Stream:    testStream(),
		Playlist:  testPlaylist(),
	})
	require.NoError(t, eng.RunNow(context.Background(), sched.ID)) // expand

	tickInPlay := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	playout.observe = func(string) {
		once.Do(func() {
			close(tickInPlay)
			<-release
		})
	}

	tickDone := make(chan struct{})
	go func() {
		eng.checkAndExecute(context.Background())
		close(tickDone)
	}()

	// RunNow arrives while the tick holds the run lock mid-play. It must
	// block, then see the items the tick finished and play nothing extra.
	<-tickInPlay
	runNowDone := make(chan error, 1)
	go func() { runNowDone <- eng.RunNow(context.Background(), sched.ID) }()
	time.Sleep(20 * time.Millisecond)
	close(release)

	<-tickDone
	require.NoError(t, <-runNowDone)

	assert.Equal(t, []string{"vod/headlines.mp4", "vod/weather.mp4"}, playout.playedSources(),
		"finished items must not be played a second time")
	for _, it := range store.itemsFor(sched.ID) {
		assert.Equal(t, model.ItemCompleted, it.Status)
	}
}

func TestStopDoesNotAbortInFlightPass(t *testing.T) {
	store := newFakeStore()
	playout := newFakePlayout()
	eng := newTestEngine(store, playout, newTestClock(testAnchor), nil)

	sched := store.addSchedule(model.Schedule{
		Name:      "Morning",
		StartDate: testAnchor,
		IsActive:  true,
		StreamID:  1,
		Stream:    testStream(),
		Playlist:  testPlaylist(),
	})
	require.NoError(t, eng.RunNow(context.Background(), sched.ID)) // expand

	inPlay := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	playout.observe = func(string) {
		once.Do(func() {
			close(inPlay)
			<-release
		})
	}

	started := make(chan struct{})
	go func() {
		eng.Start() // first pass runs synchronously
		close(started)
	}()

	<-inPlay
	eng.Stop()
	close(release)
	<-started

	assert.False(t, eng.Status().Running)
	for _, it := range store.itemsFor(sched.ID) {
		assert.Equal(t, model.ItemCompleted, it.Status,
			"stopping the engine must not fail the pass already underway")
	}
	assert.Empty(t, store.logsWithLevel(model.LogError))
}

func TestRecurrenceNotDueDoesNothing(t *testing.T) {
	store := newFakeStore()
	clock := newTestClock(testAnchor.Add(time.Hour))
	eng := newTestEngine(store, newFakePlayout(), clock, nil)

	pattern := "daily"
	store.addSchedule(model.Schedule{
		Name:             "Nightly",
		StartDate:        testAnchor,
		IsRecurring:      true,
		RecurringPattern: &pattern,
		IsActive:         true,
		StreamID:         1,
	})

	eng.generateRecurrences(clock.Now())

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Len(t, store.schedules, 1)
}
