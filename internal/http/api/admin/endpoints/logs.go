package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/nereus/internal/db"
	"github.com/Nixie-Tech-LLC/nereus/internal/http/api"
	"github.com/Nixie-Tech-LLC/nereus/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/nereus/internal/model"
)

type LogController struct {
	store db.Store
}

func NewLogController(store db.Store) *LogController {
	return &LogController{store: store}
}

func LogModule(store db.Store) api.Module {
	ctl := NewLogController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/logs", ctl.listLogs)
	})
}

func (l *LogController) listLogs(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var query packets.LogsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	var level *model.LogLevel
	if query.Level != nil {
		lv := model.LogLevel(*query.Level)
		level = &lv
	}

	offset := (query.Page - 1) * query.Limit
	logs, err := l.store.ListLogs(level, query.Limit, offset)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list logs"}
	}
	total, err := l.store.CountLogs(level)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to count logs"}
	}

	return packets.LogsResponse{
		Logs:  logs,
		Total: total,
		Page:  query.Page,
		Limit: query.Limit,
	}, nil
}
