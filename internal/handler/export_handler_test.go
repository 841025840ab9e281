package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/dto"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/service"
)

func exportRequest(format string) dto.ExportTimetableRequest {
	return dto.ExportTimetableRequest{
		Title:  "SE Division A",
		Format: format,
		Timetable: []models.SlotAssignment{
			{
				Day:      "Monday",
				Slot:     0,
				Year:     "SE",
				Division: "A",
				Subject:  "Mathematics",
				Teacher:  "Sharma",
				Room:     "R101",
				Kind:     models.SlotKindTheory,
			},
			{
				Day:      "Monday",
				Slot:     1,
				Year:     "SE",
				Division: "A",
				Batch:    "B1",
				Subject:  "PhysicsLab",
				Teacher:  "Rao",
				Room:     "L1",
				Kind:     models.SlotKindLab,
			},
		},
	}
}

func TestExportHandlerCSVDownload(t *testing.T) {
	handler := NewExportHandler(service.NewExportService(nil, nil, nil))
	w := httptest.NewRecorder()
	c := jsonContext(t, w, http.MethodPost, "/timetable/export", exportRequest("csv"))

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "se_division_a_")
	assert.True(t, strings.HasPrefix(w.Body.String(), "Day,"))
}

func TestExportHandlerPDFDownload(t *testing.T) {
	handler := NewExportHandler(service.NewExportService(nil, nil, nil))
	w := httptest.NewRecorder()
	c := jsonContext(t, w, http.MethodPost, "/timetable/export", exportRequest(""))

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestExportHandlerRejectsUnknownFormat(t *testing.T) {
	handler := NewExportHandler(service.NewExportService(nil, nil, nil))
	w := httptest.NewRecorder()
	c := jsonContext(t, w, http.MethodPost, "/timetable/export", exportRequest("xlsx"))

	handler.Export(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportHandlerRejectsInvalidBody(t *testing.T) {
	handler := NewExportHandler(service.NewExportService(nil, nil, nil))
	w := httptest.NewRecorder()
	c := jsonContext(t, w, http.MethodPost, "/timetable/export", []byte(`[]`))

	handler.Export(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
