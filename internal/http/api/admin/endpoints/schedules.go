package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/nereus/internal/db"
	"github.com/Nixie-Tech-LLC/nereus/internal/http/api"
	"github.com/Nixie-Tech-LLC/nereus/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/nereus/internal/model"
)

type ScheduleController struct {
	store db.Store
}

func NewScheduleController(store db.Store) *ScheduleController {
	return &ScheduleController{store: store}
}

func ScheduleModule(store db.Store) api.Module {
	ctl := NewScheduleController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedules", ctl.listSchedules)
		c.POST("/schedules", ctl.createSchedule)
		c.GET("/schedules/:id", ctl.getSchedule)
		c.PUT("/schedules/:id", ctl.updateSchedule)
		c.DELETE("/schedules/:id", ctl.deleteSchedule)

		c.POST("/schedules/:id/activate", ctl.activateSchedule)
		c.POST("/schedules/:id/deactivate", ctl.deactivateSchedule)
	})
}

func (s *ScheduleController) listSchedules(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var query packets.ActiveFilterQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	schedules, err := s.store.ListSchedules(query.IsActive)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list schedules"}
	}
	return schedules, nil
}

func (s *ScheduleController) createSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if request.EndDate != nil && !request.EndDate.After(request.StartDate) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "end_date must be after start_date"}
	}

	if _, err := s.store.GetStreamByID(request.StreamID); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "stream not found"}
	}
	if request.PlaylistID != nil {
		if _, err := s.store.GetPlaylistByID(*request.PlaylistID); err != nil {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "playlist not found"}
		}
	}

	active := true
	if request.IsActive != nil {
		active = *request.IsActive
	}

	schedule, err := s.store.CreateSchedule(db.NewSchedule{
		Name:             request.Name,
		Description:      request.Description,
		StartDate:        request.StartDate,
		EndDate:          request.EndDate,
		IsRecurring:      request.IsRecurring,
		RecurringPattern: request.RecurringPattern,
		IsActive:         active,
		StreamID:         request.StreamID,
		PlaylistID:       request.PlaylistID,
		CreatedBy:        user.ID,
	})
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create schedule"}
	}
	return schedule, nil
}

func (s *ScheduleController) getSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	schedule, err := s.store.GetScheduleByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}

	items, err := s.store.ListScheduleItems(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load schedule items"}
	}
	schedule.Items = items
	return schedule, nil
}

func (s *ScheduleController) updateSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var request packets.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := s.store.GetScheduleByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}

	if err := s.store.UpdateSchedule(id, request.Name, request.Description, request.StartDate, request.EndDate, request.IsActive); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update schedule"}
	}
	return gin.H{"message": "updated"}, nil
}

func (s *ScheduleController) deleteSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if _, err := s.store.GetScheduleByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}

	if err := s.store.DeleteSchedule(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete schedule"}
	}
	return gin.H{"message": "deleted"}, nil
}

func (s *ScheduleController) activateSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return s.setActive(ctx, true)
}

func (s *ScheduleController) deactivateSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return s.setActive(ctx, false)
}

func (s *ScheduleController) setActive(ctx *gin.Context, active bool) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if _, err := s.store.GetScheduleByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}

	if err := s.store.SetScheduleActive(id, active); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update schedule"}
	}
	return gin.H{"is_active": active}, nil
}
