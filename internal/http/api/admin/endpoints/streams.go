package endpoints

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/nereus/internal/db"
	"github.com/Nixie-Tech-LLC/nereus/internal/flussonic"
	"github.com/Nixie-Tech-LLC/nereus/internal/http/api"
	"github.com/Nixie-Tech-LLC/nereus/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/nereus/internal/model"
	"github.com/Nixie-Tech-LLC/nereus/internal/redis"
)

// streamHealthTTL is how long a cached media-server health snapshot stays
// valid; keeps the dashboard's poll off the media server.
const streamHealthTTL = 15 * time.Second

type StreamController struct {
	store  db.Store
	remote *flussonic.Client
}

func NewStreamController(store db.Store, remote *flussonic.Client) *StreamController {
	return &StreamController{store: store, remote: remote}
}

func StreamModule(store db.Store, remote *flussonic.Client) api.Module {
	ctl := NewStreamController(store, remote)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/servers", ctl.listServers)
		c.POST("/servers", ctl.createServer)

		c.GET("/streams", ctl.listStreams)
		c.POST("/streams", ctl.createStream)
		c.GET("/streams/:id", ctl.getStream)
		c.PUT("/streams/:id", ctl.updateStream)
		c.DELETE("/streams/:id", ctl.deleteStream)
		c.GET("/streams/:id/health", ctl.streamHealth)
	})
}

func (s *StreamController) listServers(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	servers, err := s.store.ListMediaServers()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list media servers"}
	}
	return servers, nil
}

func (s *StreamController) createServer(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateMediaServerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	server, err := s.store.CreateMediaServer(request.Name, request.Host, request.Port, request.Username, request.Password)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create media server"}
	}
	return server, nil
}

func (s *StreamController) listStreams(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var query packets.ActiveFilterQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	streams, err := s.store.ListStreams(query.IsActive)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list streams"}
	}
	return streams, nil
}

func (s *StreamController) createStream(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateStreamRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if existing, err := s.store.GetStreamByKey(request.StreamKey); err == nil && existing.ID != 0 {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "stream key already exists"}
	}

	if _, err := s.store.GetMediaServerByID(request.ServerID); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "media server not found"}
	}

	stream, err := s.store.CreateStream(request.Name, request.StreamKey, request.Description, request.ServerID, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create stream"}
	}
	return stream, nil
}

func (s *StreamController) getStream(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	stream, err := s.store.GetStreamByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "stream not found"}
	}
	return stream, nil
}

func (s *StreamController) updateStream(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var request packets.UpdateStreamRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := s.store.GetStreamByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "stream not found"}
	}

	if err := s.store.UpdateStream(id, request.Name, request.Description, request.IsActive); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update stream"}
	}
	return gin.H{"message": "updated"}, nil
}

func (s *StreamController) deleteStream(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if err := s.store.DeleteStream(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete stream"}
	}
	return gin.H{"message": "deleted"}, nil
}

// GET /streams/:id/health — remote playout state, cached briefly in redis.
func (s *StreamController) streamHealth(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	stream, err := s.store.GetStreamByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "stream not found"}
	}

	cacheKey := fmt.Sprintf("stream_health:%d", stream.ID)
	var cached flussonic.StreamHealth
	if redis.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	health := s.remote.GetStreamHealth(ctx, stream)
	redis.SetJSON(ctx, cacheKey, health, streamHealthTTL)
	return health, nil
}
