package engine

import (
	"sort"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

type slotKey struct {
	Day      string
	Slot     int
	Year     string
	Division string
}

type resourceKey struct {
	Name string
	Day  string
	Slot int
}

type subjectKey struct {
	Subject  string
	Year     string
	Division string
}

type batchSubjectKey struct {
	Subject  string
	Year     string
	Division string
	Batch    string
}

// SlotRef addresses one cohort grid cell without assignment content.
type SlotRef struct {
	Day      string
	Slot     int
	Year     string
	Division string
}

// State is the mutable bookkeeping of one generation run: the grid plus
// teacher, room and subject-fulfilment indices kept in lockstep so that
// Assign and Rollback are exact inverses. A cohort cell holds either one
// theory assignment or several parallel lab assignments.
type State struct {
	branch     *models.BranchConfig
	curriculum *models.Curriculum

	grid          map[slotKey][]models.SlotAssignment
	teacherBusy   map[resourceKey][]models.SlotAssignment
	roomBusy      map[resourceKey][]models.SlotAssignment
	subjectCounts map[subjectKey]int
	batchLabs     map[batchSubjectKey]int
	locked        map[string]struct{}
	order         []models.SlotAssignment
}

// NewState builds an empty state for the given configuration.
func NewState(branch *models.BranchConfig, curriculum *models.Curriculum) *State {
	return &State{
		branch:        branch,
		curriculum:    curriculum,
		grid:          make(map[slotKey][]models.SlotAssignment),
		teacherBusy:   make(map[resourceKey][]models.SlotAssignment),
		roomBusy:      make(map[resourceKey][]models.SlotAssignment),
		subjectCounts: make(map[subjectKey]int),
		batchLabs:     make(map[batchSubjectKey]int),
		locked:        make(map[string]struct{}),
	}
}

func lockID(a models.SlotAssignment) string {
	if a.Batch != "" {
		return a.SlotID() + "|" + a.Batch
	}
	return a.SlotID()
}

// Assign records the assignment in the grid and every index. Locked
// assignments survive rollback attempts.
func (s *State) Assign(a models.SlotAssignment, lock bool) {
	a.Locked = lock
	key := slotKey{a.Day, a.Slot, a.Year, a.Division}
	s.grid[key] = append(s.grid[key], a)
	if a.HasTeacher() {
		tk := resourceKey{a.Teacher, a.Day, a.Slot}
		s.teacherBusy[tk] = append(s.teacherBusy[tk], a)
	}
	if a.HasRoom() {
		rk := resourceKey{a.Room, a.Day, a.Slot}
		s.roomBusy[rk] = append(s.roomBusy[rk], a)
	}
	if a.Kind != models.SlotKindFree {
		s.subjectCounts[subjectKey{a.Subject, a.Year, a.Division}]++
	}
	if a.Kind == models.SlotKindLab && a.Batch != "" {
		s.batchLabs[batchSubjectKey{a.Subject, a.Year, a.Division, a.Batch}]++
	}
	if lock {
		s.locked[lockID(a)] = struct{}{}
	}
	s.order = append(s.order, a)
}

// Rollback removes a previously assigned, unlocked entry and reverses
// every index update made by Assign.
func (s *State) Rollback(a models.SlotAssignment) bool {
	if s.IsLocked(a) {
		return false
	}
	key := slotKey{a.Day, a.Slot, a.Year, a.Division}
	if !removeAssignment(s.grid, key, a) {
		return false
	}
	if a.HasTeacher() {
		removeAssignment(s.teacherBusy, resourceKey{a.Teacher, a.Day, a.Slot}, a)
	}
	if a.HasRoom() {
		removeAssignment(s.roomBusy, resourceKey{a.Room, a.Day, a.Slot}, a)
	}
	if a.Kind != models.SlotKindFree {
		sk := subjectKey{a.Subject, a.Year, a.Division}
		if s.subjectCounts[sk] > 0 {
			s.subjectCounts[sk]--
		}
	}
	if a.Kind == models.SlotKindLab && a.Batch != "" {
		bk := batchSubjectKey{a.Subject, a.Year, a.Division, a.Batch}
		if s.batchLabs[bk] > 0 {
			s.batchLabs[bk]--
		}
	}
	for i := len(s.order) - 1; i >= 0; i-- {
		if sameAssignment(s.order[i], a) {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func sameAssignment(a, b models.SlotAssignment) bool {
	return a.Day == b.Day && a.Slot == b.Slot && a.Year == b.Year &&
		a.Division == b.Division && a.Batch == b.Batch &&
		a.Subject == b.Subject && a.Teacher == b.Teacher && a.Room == b.Room
}

func removeAssignment[K comparable](m map[K][]models.SlotAssignment, key K, a models.SlotAssignment) bool {
	entries := m[key]
	for i, e := range entries {
		if sameAssignment(e, a) {
			entries = append(entries[:i], entries[i+1:]...)
			if len(entries) == 0 {
				delete(m, key)
			} else {
				m[key] = entries
			}
			return true
		}
	}
	return false
}

// Preload seeds the state with existing assignments, locking each one.
// Used for partial regeneration where other cohorts must stay untouched.
func (s *State) Preload(existing []models.SlotAssignment) {
	for _, a := range existing {
		s.Assign(a, true)
	}
}

// At returns the assignments occupying one cohort cell.
func (s *State) At(day string, slot int, year, division string) []models.SlotAssignment {
	return s.grid[slotKey{day, slot, year, division}]
}

// IsCohortSlotFree reports whether a cohort cell is empty.
func (s *State) IsCohortSlotFree(day string, slot int, year, division string) bool {
	return len(s.grid[slotKey{day, slot, year, division}]) == 0
}

// IsTeacherAvailable reports whether a teacher is unoccupied at the
// given time. The TBA sentinel is always available.
func (s *State) IsTeacherAvailable(teacher, day string, slot int) bool {
	if teacher == "" || teacher == models.TeacherTBA {
		return true
	}
	return len(s.teacherBusy[resourceKey{teacher, day, slot}]) == 0
}

// IsRoomAvailable reports whether a room is unoccupied at the given time.
func (s *State) IsRoomAvailable(room, day string, slot int) bool {
	if room == "" || room == models.RoomTBA {
		return true
	}
	return len(s.roomBusy[resourceKey{room, day, slot}]) == 0
}

// IsLocked reports whether the cell-batch occupied by a is locked.
func (s *State) IsLocked(a models.SlotAssignment) bool {
	_, ok := s.locked[lockID(a)]
	return ok
}

// SubjectCount returns how many sessions of a subject a cohort has.
func (s *State) SubjectCount(subject, year, division string) int {
	return s.subjectCounts[subjectKey{subject, year, division}]
}

// BatchHasLab reports whether a batch already holds a lab session of the
// subject, from this run or from preloaded slots.
func (s *State) BatchHasLab(subject, year, division, batch string) bool {
	return s.batchLabs[batchSubjectKey{subject, year, division, batch}] > 0
}

// RemainingSessions returns the unscheduled weekly sessions of a subject
// for one cohort, never negative.
func (s *State) RemainingSessions(subject models.Subject, division string) int {
	remaining := subject.WeeklySessions - s.SubjectCount(subject.Name, subject.Year, division)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// DailyCohortLoad counts occupied cells of one cohort on one day.
func (s *State) DailyCohortLoad(year, division, day string) int {
	load := 0
	for slot := 0; slot < s.branch.SlotsPerDay; slot++ {
		if len(s.grid[slotKey{day, slot, year, division}]) > 0 {
			load++
		}
	}
	return load
}

// DailyTeacherLoad counts slots a teacher is occupied on one day.
func (s *State) DailyTeacherLoad(teacher, day string) int {
	if teacher == "" || teacher == models.TeacherTBA {
		return 0
	}
	load := 0
	for slot := 0; slot < s.branch.SlotsPerDay; slot++ {
		if len(s.teacherBusy[resourceKey{teacher, day, slot}]) > 0 {
			load++
		}
	}
	return load
}

// WeeklyTeacherLoad counts a teacher's occupied slots over the week.
func (s *State) WeeklyTeacherLoad(teacher string) int {
	load := 0
	for _, day := range s.branch.WorkingDays {
		load += s.DailyTeacherLoad(teacher, day)
	}
	return load
}

// ConflictsAt reports whether the assignment shares its teacher or room
// with another entry at the same time. Parallel lab batches coexist in
// one cohort cell but always hold distinct teachers and rooms, so plain
// resource overlap is the right check. TBA sentinels never conflict.
func (s *State) ConflictsAt(a models.SlotAssignment) bool {
	if a.HasTeacher() {
		for _, other := range s.teacherBusy[resourceKey{a.Teacher, a.Day, a.Slot}] {
			if !sameAssignment(other, a) {
				return true
			}
		}
	}
	if a.HasRoom() {
		for _, other := range s.roomBusy[resourceKey{a.Room, a.Day, a.Slot}] {
			if !sameAssignment(other, a) {
				return true
			}
		}
	}
	return false
}

// Assignments returns a copy of every assignment in insertion order.
func (s *State) Assignments() []models.SlotAssignment {
	out := make([]models.SlotAssignment, len(s.order))
	copy(out, s.order)
	return out
}

// OpenRefs lists the still-empty cohort cells in deterministic order,
// skipping recess.
func (s *State) OpenRefs() []SlotRef {
	var refs []SlotRef
	for _, year := range s.branch.AcademicYears {
		for _, division := range s.branch.DivisionsFor(year) {
			for _, day := range s.branch.WorkingDays {
				for slot := 0; slot < s.branch.SlotsPerDay; slot++ {
					if s.branch.IsRecess(slot) {
						continue
					}
					if s.IsCohortSlotFree(day, slot, year, division) {
						refs = append(refs, SlotRef{day, slot, year, division})
					}
				}
			}
		}
	}
	return refs
}

// SortAssignments orders slots by day, slot index, year, division and
// batch for stable output.
func SortAssignments(branch *models.BranchConfig, slots []models.SlotAssignment) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if di, dj := branch.DayIndex(a.Day), branch.DayIndex(b.Day); di != dj {
			return di < dj
		}
		if a.Slot != b.Slot {
			return a.Slot < b.Slot
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Division != b.Division {
			return a.Division < b.Division
		}
		return a.Batch < b.Batch
	})
}
