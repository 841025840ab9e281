package models

import "fmt"

// SharedLab is a laboratory room shared across years and divisions.
type SharedLab struct {
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity,omitempty"`
}

// BranchConfig describes the physical and calendar shape of one branch:
// which cohorts exist, the weekly grid and the room inventory.
type BranchConfig struct {
	BranchID          string              `json:"branch_id,omitempty"`
	AcademicYears     []string            `json:"academic_years" validate:"required,min=1"`
	Divisions         map[string][]string `json:"divisions" validate:"required"`
	WorkingDays       []string            `json:"working_days" validate:"required,min=1"`
	SlotsPerDay       int                 `json:"slots_per_day" validate:"required,min=1"`
	RecessSlot        *int                `json:"recess_slot,omitempty"`
	Classrooms        map[string][]string `json:"classrooms" validate:"required"`
	SharedLabs        []SharedLab         `json:"shared_labs"`
	LabBatchesPerYear map[string]int      `json:"lab_batches_per_year,omitempty"`
}

// DivisionsFor returns the division letters configured for a year.
func (b *BranchConfig) DivisionsFor(year string) []string {
	return b.Divisions[year]
}

// BatchesFor returns the number of lab batches for a year, defaulting to 3.
func (b *BranchConfig) BatchesFor(year string) int {
	if n, ok := b.LabBatchesPerYear[year]; ok && n > 0 {
		return n
	}
	return 3
}

// IsRecess reports whether the slot index is the recess slot.
func (b *BranchConfig) IsRecess(slot int) bool {
	return b.RecessSlot != nil && *b.RecessSlot == slot
}

// TeachingSlotsPerDay is the number of slots usable for teaching each day.
func (b *BranchConfig) TeachingSlotsPerDay() int {
	if b.RecessSlot != nil && *b.RecessSlot >= 0 && *b.RecessSlot < b.SlotsPerDay {
		return b.SlotsPerDay - 1
	}
	return b.SlotsPerDay
}

// DayIndex returns the position of day within the working week, or -1.
func (b *BranchConfig) DayIndex(day string) int {
	for i, d := range b.WorkingDays {
		if d == day {
			return i
		}
	}
	return -1
}

// LabNames lists the shared lab room names.
func (b *BranchConfig) LabNames() []string {
	names := make([]string, 0, len(b.SharedLabs))
	for _, lab := range b.SharedLabs {
		names = append(names, lab.Name)
	}
	return names
}

// AllClassrooms flattens every configured classroom across years.
func (b *BranchConfig) AllClassrooms() []string {
	seen := make(map[string]struct{})
	var rooms []string
	for _, year := range b.AcademicYears {
		for _, room := range b.Classrooms[year] {
			if _, ok := seen[room]; ok {
				continue
			}
			seen[room] = struct{}{}
			rooms = append(rooms, room)
		}
	}
	return rooms
}

// HomeRoom maps a division letter onto the year's classroom pool.
func (b *BranchConfig) HomeRoom(year, division string) string {
	rooms := b.Classrooms[year]
	if len(rooms) == 0 {
		return ""
	}
	idx := 0
	if len(division) > 0 {
		idx = int(division[0]-'A') % len(rooms)
		if idx < 0 {
			idx = 0
		}
	}
	return rooms[idx]
}

// Validate checks structural integrity of the branch configuration.
func (b *BranchConfig) Validate() error {
	if len(b.AcademicYears) == 0 {
		return fmt.Errorf("branch config requires at least one academic year")
	}
	if len(b.WorkingDays) == 0 {
		return fmt.Errorf("branch config requires at least one working day")
	}
	if b.SlotsPerDay < 1 {
		return fmt.Errorf("slots_per_day must be positive, got %d", b.SlotsPerDay)
	}
	if b.RecessSlot != nil && (*b.RecessSlot < 0 || *b.RecessSlot >= b.SlotsPerDay) {
		return fmt.Errorf("recess_slot %d outside day of %d slots", *b.RecessSlot, b.SlotsPerDay)
	}
	for _, year := range b.AcademicYears {
		if len(b.Divisions[year]) == 0 {
			return fmt.Errorf("year %s has no divisions configured", year)
		}
	}
	return nil
}
