package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/service"
	appErrors "github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/errors"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/response"
)

// HistoryHandler wires HTTP endpoints to the history service.
type HistoryHandler struct {
	service *service.HistoryService
}

// NewHistoryHandler creates a new handler.
func NewHistoryHandler(svc *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: svc}
}

// List godoc
// @Summary List timetable versions
// @Description List the stored versions of one branch, newest first
// @Tags History
// @Produce json
// @Security BearerAuth
// @Param branch_id query string false "Branch identifier"
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /timetable/versions [get]
func (h *HistoryHandler) List(c *gin.Context) {
	branchID := c.Query("branch_id")
	if branchID == "" {
		branchID = "default"
	}

	res, err := h.service.List(c.Request.Context(), branchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// Get godoc
// @Summary Get a timetable version
// @Description Load one stored version with its full slot payload
// @Tags History
// @Produce json
// @Security BearerAuth
// @Param id path string true "Version identifier"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /timetable/versions/{id} [get]
func (h *HistoryHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "version id is required"))
		return
	}

	res, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// Restore godoc
// @Summary Restore a timetable version
// @Description Make a past version the new head by re-recording its payload
// @Tags History
// @Produce json
// @Security BearerAuth
// @Param id path string true "Version identifier"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /timetable/versions/{id}/restore [post]
func (h *HistoryHandler) Restore(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "version id is required"))
		return
	}

	res, err := h.service.Restore(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}
