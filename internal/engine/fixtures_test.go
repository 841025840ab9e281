package engine

import (
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

func intPtr(v int) *int { return &v }

type fixtureConfig struct {
	divisions []string
	batches   int
	labs      []string
	subjects  []models.Subject
	teachers  []models.Teacher
	bindings  []models.SubjectAssignment
}

func newFixture(cfg fixtureConfig) (*models.BranchConfig, *models.Curriculum) {
	if len(cfg.divisions) == 0 {
		cfg.divisions = []string{"A"}
	}
	if cfg.batches == 0 {
		cfg.batches = 2
	}
	labs := make([]models.SharedLab, 0, len(cfg.labs))
	for _, name := range cfg.labs {
		labs = append(labs, models.SharedLab{Name: name, Capacity: 30})
	}
	branch := &models.BranchConfig{
		AcademicYears:     []string{"SE"},
		Divisions:         map[string][]string{"SE": cfg.divisions},
		WorkingDays:       []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		SlotsPerDay:       7,
		RecessSlot:        intPtr(3),
		Classrooms:        map[string][]string{"SE": {"R101", "R102"}},
		SharedLabs:        labs,
		LabBatchesPerYear: map[string]int{"SE": cfg.batches},
	}
	curriculum := &models.Curriculum{
		Subjects:    cfg.subjects,
		Teachers:    cfg.teachers,
		Assignments: cfg.bindings,
	}
	return branch, curriculum
}

func theorySubject(name string, weekly int) models.Subject {
	return models.Subject{Name: name, Year: "SE", WeeklySessions: weekly}
}

func labSubject(name string) models.Subject {
	return models.Subject{Name: name, Year: "SE", IsPractical: true}
}
