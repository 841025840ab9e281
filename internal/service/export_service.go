package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/dto"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/export"
	appErrors "github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/errors"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is a rendered timetable document ready to send.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders timetables into downloadable documents.
type ExportService struct {
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers fall back
// to the default exporters.
func NewExportService(csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{csv: csv, pdf: pdf, logger: logger}
}

// Export renders the timetable in the requested format, defaulting to
// PDF.
func (s *ExportService) Export(req dto.ExportTimetableRequest) (*ExportResult, error) {
	if len(req.Timetable) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "timetable is empty")
	}

	dataset := buildDataset(req.Timetable)
	title := req.Title
	if title == "" {
		title = "Timetable"
	}

	format := strings.ToLower(req.Format)
	if format == "" {
		format = "pdf"
	}

	var (
		payload     []byte
		contentType string
		err         error
	)
	switch format {
	case "csv":
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case "pdf":
		payload, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", req.Format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render timetable export")
	}

	filename := fmt.Sprintf("%s_%s.%s",
		strings.ReplaceAll(strings.ToLower(title), " ", "_"),
		time.Now().UTC().Format("20060102_150405"),
		format)
	s.logger.Info("timetable exported",
		zap.String("format", format),
		zap.Int("rows", len(req.Timetable)),
		zap.Int("bytes", len(payload)))
	return &ExportResult{Filename: filename, ContentType: contentType, Payload: payload}, nil
}

func buildDataset(slots []models.SlotAssignment) export.Dataset {
	headers := []string{"Day", "Slot", "Year", "Division", "Batch", "Subject", "Teacher", "Room", "Kind"}
	rows := make([]map[string]string, 0, len(slots))
	for _, a := range slots {
		rows = append(rows, map[string]string{
			"Day":      a.Day,
			"Slot":     strconv.Itoa(a.Slot + 1),
			"Year":     a.Year,
			"Division": a.Division,
			"Batch":    a.Batch,
			"Subject":  a.Subject,
			"Teacher":  a.Teacher,
			"Room":     a.Room,
			"Kind":     string(a.Kind),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
