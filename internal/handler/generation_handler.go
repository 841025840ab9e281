package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/dto"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/service"
	appErrors "github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/errors"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/response"
)

// GenerationHandler wires HTTP endpoints to the generation service.
type GenerationHandler struct {
	service *service.GenerationService
}

// NewGenerationHandler creates a new handler.
func NewGenerationHandler(svc *service.GenerationService) *GenerationHandler {
	return &GenerationHandler{service: svc}
}

// Generate godoc
// @Summary Generate a timetable
// @Description Run the scheduling engine over a branch configuration and curriculum
// @Tags Timetable
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.GenerateTimetableRequest true "Generation payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /timetable/generate [post]
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}

	res, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	// A run that produced no usable timetable maps to 422 with the
	// failure report in the body.
	status := http.StatusOK
	if !res.Success && len(res.Slots) == 0 {
		status = http.StatusUnprocessableEntity
	}
	response.JSON(c, status, res, nil)
}

// Optimize godoc
// @Summary Optimize a timetable
// @Description Improve an existing timetable with hill climbing
// @Tags Timetable
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.OptimizeTimetableRequest true "Optimization payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /timetable/optimize [post]
func (h *GenerationHandler) Optimize(c *gin.Context) {
	var req dto.OptimizeTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid optimization payload"))
		return
	}

	res, err := h.service.Optimize(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// EngineStatus godoc
// @Summary Engine capabilities
// @Description List strategies and constraint rules of the scheduling engine
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable/engine/status [get]
func (h *GenerationHandler) EngineStatus(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.EngineStatus(), nil)
}
