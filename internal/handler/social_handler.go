package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focusroom/internal/middleware"
	"focusroom/internal/service"
)

type SocialHandler struct {
	socialService *service.SocialService
}

func NewSocialHandler(socialService *service.SocialService) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

func (h *SocialHandler) Leaderboard(c *gin.Context) {
	entries, apiErr := h.socialService.Leaderboard(c.Request.Context(), c.Query("by"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *SocialHandler) PublicRooms(c *gin.Context) {
	rooms, apiErr := h.socialService.PublicRooms(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func (h *SocialHandler) ToggleLike(c *gin.Context) {
	viewerID := middleware.UserID(c)
	liked, apiErr := h.socialService.ToggleLike(c.Request.Context(), viewerID, c.Param("ownerID"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
