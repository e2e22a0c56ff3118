package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focusroom/internal/middleware"
	"focusroom/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)
	profile, apiErr := h.profileService.Get(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) UpdateCoins(c *gin.Context) {
	var req struct {
		Coins int `json:"coins"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}

	userID := middleware.UserID(c)
	if apiErr := h.profileService.UpdateCoins(c.Request.Context(), userID, req.Coins); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coins": req.Coins})
}

func (h *ProfileHandler) SetRoomPublic(c *gin.Context) {
	var req struct {
		IsRoomPublic bool `json:"isRoomPublic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}

	userID := middleware.UserID(c)
	if apiErr := h.profileService.SetRoomPublic(c.Request.Context(), userID, req.IsRoomPublic); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isRoomPublic": req.IsRoomPublic})
}
