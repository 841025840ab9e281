package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/dto"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/service"
	appErrors "github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/errors"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/response"
)

// ExportHandler wires HTTP endpoints to the export service.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Export godoc
// @Summary Export a timetable
// @Description Render a timetable as a downloadable PDF or CSV document
// @Tags Export
// @Accept json
// @Produce application/pdf
// @Produce text/csv
// @Security BearerAuth
// @Param payload body dto.ExportTimetableRequest true "Export payload"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /timetable/export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	var req dto.ExportTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}

	result, err := h.service.Export(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
