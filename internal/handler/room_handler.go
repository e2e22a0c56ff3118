package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focusroom/internal/middleware"
	"focusroom/internal/model"
	"focusroom/internal/service"
)

type RoomHandler struct {
	roomService *service.RoomService
}

func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

func (h *RoomHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)
	state, apiErr := h.roomService.Get(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": state})
}

func (h *RoomHandler) Upsert(c *gin.Context) {
	var state model.RoomState
	if err := c.ShouldBindJSON(&state); err != nil {
		badJSON(c)
		return
	}

	userID := middleware.UserID(c)
	if apiErr := h.roomService.Upsert(c.Request.Context(), userID, state); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": state})
}
