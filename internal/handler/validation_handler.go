package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/dto"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/service"
	appErrors "github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/errors"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/response"
)

// ValidationHandler wires HTTP endpoints to the validation service.
type ValidationHandler struct {
	service *service.ValidationService
}

// NewValidationHandler creates a new handler.
func NewValidationHandler(svc *service.ValidationService) *ValidationHandler {
	return &ValidationHandler{service: svc}
}

// Validate godoc
// @Summary Validate a timetable
// @Description Run the full constraint sweep over a timetable
// @Tags Validation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ValidateTimetableRequest true "Validation payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /timetable/validate [post]
func (h *ValidationHandler) Validate(c *gin.Context) {
	var req dto.ValidateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid validation payload"))
		return
	}

	res, err := h.service.Validate(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// ValidateEdit godoc
// @Summary Validate a slot edit
// @Description Check one proposed slot change against an existing timetable
// @Tags Validation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ValidateEditRequest true "Edit payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /timetable/validate-edit [post]
func (h *ValidationHandler) ValidateEdit(c *gin.Context) {
	var req dto.ValidateEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid edit payload"))
		return
	}

	res, err := h.service.ValidateEdit(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// ListConstraints godoc
// @Summary List constraint rules
// @Description List every registered constraint with its toggle state
// @Tags Validation
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /constraints [get]
func (h *ValidationHandler) ListConstraints(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Constraints(), nil)
}

// ToggleConstraint godoc
// @Summary Toggle a constraint rule
// @Description Enable or disable a named constraint for subsequent validations
// @Tags Validation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Constraint name"
// @Param payload body dto.ConstraintToggleRequest true "Toggle payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /constraints/{name} [patch]
func (h *ValidationHandler) ToggleConstraint(c *gin.Context) {
	var req dto.ConstraintToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "enabled flag is required"))
		return
	}

	info, err := h.service.SetConstraintEnabled(c.Param("name"), *req.Enabled)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, info, nil)
}
