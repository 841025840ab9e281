package engine

import (
	"sort"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

// Candidate is one possible assignment for an open cell, ranked by
// penalty. Lower penalties are tried first.
type Candidate struct {
	Assignment models.SlotAssignment
	Penalty    int
}

// freeSlotPenalty ranks the explicit free period behind every real
// lecture option so search only idles a cell when nothing else fits.
const freeSlotPenalty = 1000

// CandidateGenerator produces ranked (subject, teacher, room) options
// for the backtracking search.
type CandidateGenerator struct {
	state *State
}

// NewCandidateGenerator builds a generator over a shared state.
func NewCandidateGenerator(state *State) *CandidateGenerator {
	return &CandidateGenerator{state: state}
}

// Generate lists admissible assignments for the cell, cheapest first,
// always terminated by a free-period fallback.
func (g *CandidateGenerator) Generate(ref SlotRef) []Candidate {
	var out []Candidate
	for _, subject := range g.state.curriculum.TheorySubjects(ref.Year, ref.Division) {
		if g.state.RemainingSessions(subject, ref.Division) == 0 {
			continue
		}
		teachers := g.state.curriculum.TeachersFor(subject.Name)
		if len(teachers) == 0 {
			continue
		}
		for _, teacher := range teachers {
			if !g.state.IsTeacherAvailable(teacher, ref.Day, ref.Slot) {
				continue
			}
			for _, room := range g.rooms(ref.Year) {
				if !g.state.IsRoomAvailable(room, ref.Day, ref.Slot) {
					continue
				}
				a := models.SlotAssignment{
					Day:      ref.Day,
					Slot:     ref.Slot,
					Year:     ref.Year,
					Division: ref.Division,
					Subject:  subject.Name,
					Teacher:  teacher,
					Room:     room,
					Kind:     models.SlotKindTheory,
				}
				out = append(out, Candidate{Assignment: a, Penalty: g.penalty(a)})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Penalty < out[j].Penalty })
	out = append(out, Candidate{
		Assignment: models.SlotAssignment{
			Day:      ref.Day,
			Slot:     ref.Slot,
			Year:     ref.Year,
			Division: ref.Division,
			Subject:  models.SubjectFree,
			Teacher:  models.TeacherTBA,
			Room:     models.RoomTBA,
			Kind:     models.SlotKindFree,
		},
		Penalty: freeSlotPenalty,
	})
	return out
}

func (g *CandidateGenerator) rooms(year string) []string {
	if rooms := g.state.branch.Classrooms[year]; len(rooms) > 0 {
		return rooms
	}
	return g.state.branch.AllClassrooms()
}

// penalty scores a candidate: tired teachers, repeated subjects and
// late slots cost extra.
func (g *CandidateGenerator) penalty(a models.SlotAssignment) int {
	p := 0
	switch load := g.state.DailyTeacherLoad(a.Teacher, a.Day); {
	case load >= 4:
		p += 5
	case load >= 3:
		p += 2
	}
	if g.subjectCountOnDay(a) > 0 {
		p += 3
	}
	if a.Slot >= 6 {
		p++
	}
	return p
}

func (g *CandidateGenerator) subjectCountOnDay(a models.SlotAssignment) int {
	count := 0
	for slot := 0; slot < g.state.branch.SlotsPerDay; slot++ {
		for _, entry := range g.state.At(a.Day, slot, a.Year, a.Division) {
			if entry.Subject == a.Subject {
				count++
			}
		}
	}
	return count
}
