package constraints

import "github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"

// Severity splits rules into the two enforcement tiers.
type Severity string

const (
	SeverityHard Severity = "HARD"
	SeveritySoft Severity = "SOFT"
)

// Registered rule names.
const (
	TeacherNonOverlap        = "TEACHER_NON_OVERLAP"
	RoomNonOverlap           = "ROOM_NON_OVERLAP"
	LabBatchSync             = "LAB_BATCH_SYNC"
	WeeklyLectureCompletion  = "WEEKLY_LECTURE_COMPLETION"
	StructuralValidity       = "STRUCTURAL_VALIDITY"
	TeacherConsecutiveLimit  = "TEACHER_CONSECUTIVE_LIMIT"
	StudentConsecutiveLimit  = "STUDENT_CONSECUTIVE_LIMIT"
	BalancedTeacherLoad      = "BALANCED_TEACHER_LOAD"
	BalancedDailyLoad        = "BALANCED_DAILY_LOAD"
	SubjectRepetitionAvoid   = "SUBJECT_REPETITION_AVOIDANCE"
	PreferenceHandling       = "PREFERENCE_HANDLING"
)

// Violation is one concrete rule breach located in the timetable.
type Violation struct {
	Constraint string            `json:"constraint"`
	Severity   Severity          `json:"severity"`
	Message    string            `json:"message"`
	Day        string            `json:"day,omitempty"`
	Slot       int               `json:"slot,omitempty"`
	Entities   map[string]string `json:"entities,omitempty"`
}

// Context carries the configuration a rule may need beyond the slots.
type Context struct {
	Branch     *models.BranchConfig
	Curriculum *models.Curriculum
}

// Result is a rule's verdict. Soft rules grade 0-100 via Score; hard
// rules only report violations.
type Result struct {
	Violations []Violation
	Score      float64
}

// Rule is a pluggable constraint checked against a full timetable.
type Rule interface {
	Name() string
	Description() string
	Severity() Severity
	Check(slots []models.SlotAssignment, ctx *Context) Result
}
