package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"focusroom/internal/middleware"
	"focusroom/internal/model"
	"focusroom/internal/service"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) RecordSession(c *gin.Context) {
	var req struct {
		DurationMinutes int `json:"durationMinutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}

	userID := middleware.UserID(c)
	profile, apiErr := h.statsService.RecordSession(c.Request.Context(), userID, req.DurationMinutes)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

func (h *StatsHandler) GetDaily(c *gin.Context) {
	userID := middleware.UserID(c)
	stat, apiErr := h.statsService.GetDaily(c.Request.Context(), userID, c.Param("day"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stat": stat})
}

func (h *StatsHandler) UpsertDaily(c *gin.Context) {
	var req struct {
		Count   int `json:"count"`
		Minutes int `json:"minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}

	userID := middleware.UserID(c)
	stat := model.DailyStat{Day: c.Param("day"), Count: req.Count, Minutes: req.Minutes}
	merged, apiErr := h.statsService.UpsertDaily(c.Request.Context(), userID, stat)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stat": merged})
}

func (h *StatsHandler) ListSessions(c *gin.Context) {
	limit := 50
	if rawLimit := c.Query("limit"); rawLimit != "" {
		if parsed, err := strconv.Atoi(rawLimit); err == nil {
			limit = parsed
		}
	}

	userID := middleware.UserID(c)
	sessions, apiErr := h.statsService.ListSessions(c.Request.Context(), userID, limit)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
