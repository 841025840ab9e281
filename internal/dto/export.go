package dto

import "github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"

// ExportTimetableRequest renders a timetable into a downloadable document.
type ExportTimetableRequest struct {
	Title     string                  `json:"title,omitempty"`
	Format    string                  `json:"format,omitempty" validate:"omitempty,oneof=pdf csv"`
	Timetable []models.SlotAssignment `json:"timetable" validate:"required,min=1,dive"`
}
