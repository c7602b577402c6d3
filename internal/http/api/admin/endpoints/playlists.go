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

type PlaylistController struct {
	store db.Store
}

func NewPlaylistController(store db.Store) *PlaylistController {
	return &PlaylistController{store: store}
}

func PlaylistModule(store db.Store) api.Module {
	ctl := NewPlaylistController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/playlists", ctl.listPlaylists)
		c.POST("/playlists", ctl.createPlaylist)
		c.GET("/playlists/:id", ctl.getPlaylist)
		c.PUT("/playlists/:id", ctl.updatePlaylist)
		c.DELETE("/playlists/:id", ctl.deletePlaylist)

		c.POST("/playlists/:id/items", ctl.addItem)
		c.PUT("/playlists/items/:item_id", ctl.updateItem)
		c.DELETE("/playlists/items/:item_id", ctl.removeItem)
		c.POST("/playlists/:id/items/reorder", ctl.reorderItems)
	})
}

func (p *PlaylistController) listPlaylists(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var query packets.ActiveFilterQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	playlists, err := p.store.ListPlaylists(query.IsActive)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list playlists"}
	}
	return playlists, nil
}

func (p *PlaylistController) createPlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreatePlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	playlist, err := p.store.CreatePlaylist(request.Name, request.Description, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create playlist"}
	}

	for _, item := range request.Items {
		if _, err := p.store.AddPlaylistItem(playlist.ID, item.Title, item.SourceURL, item.Duration); err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not add playlist item"}
		}
	}

	created, err := p.store.GetPlaylistByID(playlist.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load playlist"}
	}
	return created, nil
}

func (p *PlaylistController) getPlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	playlist, err := p.store.GetPlaylistByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "playlist not found"}
	}
	return playlist, nil
}

func (p *PlaylistController) updatePlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var request packets.UpdatePlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := p.store.GetPlaylistByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "playlist not found"}
	}

	if err := p.store.UpdatePlaylist(id, request.Name, request.Description, request.IsActive); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update playlist"}
	}
	return gin.H{"message": "updated"}, nil
}

func (p *PlaylistController) deletePlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if err := p.store.DeletePlaylist(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete playlist"}
	}
	return gin.H{"message": "deleted"}, nil
}

func (p *PlaylistController) addItem(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	playlistID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid playlist id"}
	}

	var request packets.AddPlaylistItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := p.store.GetPlaylistByID(playlistID); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "playlist not found"}
	}

	item, err := p.store.AddPlaylistItem(playlistID, request.Title, request.SourceURL, request.Duration)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not add item"}
	}
	return item, nil
}

func (p *PlaylistController) updateItem(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	itemID, err := strconv.Atoi(ctx.Param("item_id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid item id"}
	}

	var request packets.UpdatePlaylistItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := p.store.UpdatePlaylistItem(itemID, request.Title, request.SourceURL, request.Duration); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update item"}
	}
	return gin.H{"message": "updated"}, nil
}

func (p *PlaylistController) removeItem(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	itemID, err := strconv.Atoi(ctx.Param("item_id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid item id"}
	}

	if err := p.store.RemovePlaylistItem(itemID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not remove item"}
	}
	return gin.H{"message": "deleted"}, nil
}

func (p *PlaylistController) reorderItems(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	playlistID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid playlist id"}
	}

	var request packets.ReorderItemsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := p.store.ReorderPlaylistItems(playlistID, request.ItemIDs); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not reorder items"}
	}
	return gin.H{"message": "reordered"}, nil
}
