package endpoints

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/nereus/internal/engine"
	"github.com/Nixie-Tech-LLC/nereus/internal/http/api"
	"github.com/Nixie-Tech-LLC/nereus/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/nereus/internal/model"
)

type SchedulerController struct {
	engine *engine.Engine
}

func NewSchedulerController(eng *engine.Engine) *SchedulerController {
	return &SchedulerController{engine: eng}
}

func SchedulerModule(eng *engine.Engine) api.Module {
	ctl := NewSchedulerController(eng)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/scheduler", ctl.getStatus)
		c.POST("/scheduler", ctl.postAction)
	})
}

func (s *SchedulerController) getStatus(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	status := s.engine.Status()
	response := packets.SchedulerStatusResponse{Running: status.Running}
	if !status.LastCheck.IsZero() {
		response.LastCheck = status.LastCheck.UTC().Format(time.RFC3339)
	}
	return response, nil
}

func (s *SchedulerController) postAction(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.SchedulerActionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	switch request.Action {
	case "start":
		s.engine.Start()
		return gin.H{"message": "scheduler started"}, nil
	case "stop":
		s.engine.Stop()
		return gin.H{"message": "scheduler stopped"}, nil
	case "execute":
		if request.ScheduleID == nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "schedule_id is required for execute"}
		}
		if err := s.engine.RunNow(ctx.Request.Context(), *request.ScheduleID); err != nil {
			if errors.Is(err, engine.ErrScheduleNotFound) {
				return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
			}
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "schedule execution failed"}
		}
		return gin.H{"message": "schedule executed"}, nil
	}
	return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown action"}
}
