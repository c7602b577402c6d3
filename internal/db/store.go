// exposes a Store interface that is passed to API handlers and the engine
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/nereus/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// media server functions
	CreateMediaServer(name, host string, port int, username, password string) (model.MediaServer, error)
	GetMediaServerByID(id int) (model.MediaServer, error)
	ListMediaServers() ([]model.MediaServer, error)

	// stream functions
	CreateStream(name, streamKey string, description *string, serverID, createdBy int) (model.Stream, error)
	GetStreamByID(id int) (model.Stream, error)
	GetStreamByKey(streamKey string) (model.Stream, error)
	ListStreams(isActive *bool) ([]model.Stream, error)
	UpdateStream(id int, name, description *string, isActive *bool) error
	DeleteStream(id int) error

	// playlist functions
	CreatePlaylist(name string, description *string, createdBy int) (model.Playlist, error)
	GetPlaylistByID(id int) (model.Playlist, error)
	ListPlaylists(isActive *bool) ([]model.Playlist, error)
	UpdatePlaylist(id int, name, description *string, isActive *bool) error
	DeletePlaylist(id int) error
	AddPlaylistItem(playlistID int, title, sourceURL string, duration int) (model.PlaylistItem, error)
	UpdatePlaylistItem(itemID int, title, sourceURL *string, duration *int) error
	RemovePlaylistItem(itemID int) error
	ReorderPlaylistItems(playlistID int, itemIDs []int) error

	// schedule functions
	CreateSchedule(in NewSchedule) (model.Schedule, error)
	GetScheduleByID(id int) (model.Schedule, error)
	ListSchedules(isActive *bool) ([]model.Schedule, error)
	UpdateSchedule(id int, name, description *string, startDate, endDate *time.Time, isActive *bool) error
	SetScheduleActive(id int, active bool) error
	DeleteSchedule(id int) error
	ListScheduleItems(scheduleID int) ([]model.ScheduleItem, error)

	// engine-facing functions
	DueSchedules(now time.Time) ([]model.Schedule, error)
	GetScheduleForExecution(id int) (model.Schedule, error)
	RecurringSchedules() ([]model.Schedule, error)
	CountScheduleItems(scheduleID int) (int, error)
	CreateScheduleItems(scheduleID int, items []model.ScheduleItem) error
	UpdateScheduleItemStatus(itemID int, status model.ItemStatus) error
	AppendLog(level model.LogLevel, message string, metadata map[string]any) error

	// log functions
	ListLogs(level *model.LogLevel, limit, offset int) ([]model.SystemLog, error)
	CountLogs(level *model.LogLevel) (int, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(database *sqlx.DB) Store {
	if database == nil {
		database = DB
	}
	return &pgStore{db: database}
}

func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	return CreateUser(email, hashedPassword, name)
}
func (s *pgStore) GetUserByEmail(email string) (*model.User, error) { return GetUserByEmail(email) }
func (s *pgStore) GetUserByID(id int) (*model.User, error)          { return GetUserByID(id) }
func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	return UpdateUserProfile(id, email, name)
}

func (s *pgStore) CreateMediaServer(name, host string, port int, username, password string) (model.MediaServer, error) {
	return CreateMediaServer(name, host, port, username, password)
}
func (s *pgStore) GetMediaServerByID(id int) (model.MediaServer, error) { return GetMediaServerByID(id) }
func (s *pgStore) ListMediaServers() ([]model.MediaServer, error)       { return ListMediaServers() }

func (s *pgStore) CreateStream(name, streamKey string, description *string, serverID, createdBy int) (model.Stream, error) {
	return CreateStream(name, streamKey, description, serverID, createdBy)
}
func (s *pgStore) GetStreamByID(id int) (model.Stream, error)          { return GetStreamByID(id) }
func (s *pgStore) GetStreamByKey(streamKey string) (model.Stream, error) {
	return GetStreamByKey(streamKey)
}
func (s *pgStore) ListStreams(isActive *bool) ([]model.Stream, error) { return ListStreams(isActive) }
func (s *pgStore) UpdateStream(id int, name, description *string, isActive *bool) error {
	return UpdateStream(id, name, description, isActive)
}
func (s *pgStore) DeleteStream(id int) error { return DeleteStream(id) }

func (s *pgStore) CreatePlaylist(name string, description *string, createdBy int) (model.Playlist, error) {
	return CreatePlaylist(name, description, createdBy)
}
func (s *pgStore) GetPlaylistByID(id int) (model.Playlist, error) { return GetPlaylistByID(id) }
func (s *pgStore) ListPlaylists(isActive *bool) ([]model.Playlist, error) {
	return ListPlaylists(isActive)
}
func (s *pgStore) UpdatePlaylist(id int, name, description *string, isActive *bool) error {
	return UpdatePlaylist(id, name, description, isActive)
}
func (s *pgStore) DeletePlaylist(id int) error { return DeletePlaylist(id) }
func (s *pgStore) AddPlaylistItem(playlistID int, title, sourceURL string, duration int) (model.PlaylistItem, error) {
	return AddPlaylistItem(playlistID, title, sourceURL, duration)
}
func (s *pgStore) UpdatePlaylistItem(itemID int, title, sourceURL *string, duration *int) error {
	return UpdatePlaylistItem(itemID, title, sourceURL, duration)
}
func (s *pgStore) RemovePlaylistItem(itemID int) error { return RemovePlaylistItem(itemID) }
func (s *pgStore) ReorderPlaylistItems(playlistID int, itemIDs []int) error {
	return ReorderPlaylistItems(playlistID, itemIDs)
}

func (s *pgStore) CreateSchedule(in NewSchedule) (model.Schedule, error) { return CreateSchedule(in) }
func (s *pgStore) GetScheduleByID(id int) (model.Schedule, error)        { return GetScheduleByID(id) }
func (s *pgStore) ListSchedules(isActive *bool) ([]model.Schedule, error) {
	return ListSchedules(isActive)
}
func (s *pgStore) UpdateSchedule(id int, name, description *string, startDate, endDate *time.Time, isActive *bool) error {
	return UpdateSchedule(id, name, description, startDate, endDate, isActive)
}
func (s *pgStore) SetScheduleActive(id int, active bool) error { return SetScheduleActive(id, active) }
func (s *pgStore) DeleteSchedule(id int) error                 { return DeleteSchedule(id) }
func (s *pgStore) ListScheduleItems(scheduleID int) ([]model.ScheduleItem, error) {
	return ListScheduleItems(scheduleID)
}

func (s *pgStore) DueSchedules(now time.Time) ([]model.Schedule, error) { return DueSchedules(now) }
func (s *pgStore) GetScheduleForExecution(id int) (model.Schedule, error) {
	return GetScheduleForExecution(id)
}
func (s *pgStore) RecurringSchedules() ([]model.Schedule, error) { return RecurringSchedules() }
func (s *pgStore) CountScheduleItems(scheduleID int) (int, error) {
	return CountScheduleItems(scheduleID)
}
func (s *pgStore) CreateScheduleItems(scheduleID int, items []model.ScheduleItem) error {
	return CreateScheduleItems(scheduleID, items)
}
func (s *pgStore) UpdateScheduleItemStatus(itemID int, status model.ItemStatus) error {
	return UpdateScheduleItemStatus(itemID, status)
}
func (s *pgStore) AppendLog(level model.LogLevel, message string, metadata map[string]any) error {
	return AppendLog(level, message, metadata)
}

func (s *pgStore) ListLogs(level *model.LogLevel, limit, offset int) ([]model.SystemLog, error) {
	return ListLogs(level, limit, offset)
}
func (s *pgStore) CountLogs(level *model.LogLevel) (int, error) { return CountLogs(level) }
