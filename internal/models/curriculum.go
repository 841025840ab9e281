package models

// Subject is a curriculum entry for one year, optionally scoped to a
// single division. Practical subjects run as lab sessions in batches.
type Subject struct {
	Name           string `json:"name" validate:"required"`
	Year           string `json:"year" validate:"required"`
	Division       string `json:"division,omitempty"`
	WeeklySessions int    `json:"weekly_sessions" validate:"min=0"`
	IsPractical    bool   `json:"is_practical"`
	SessionLength  int    `json:"session_length,omitempty"`
}

// AppliesTo reports whether the subject is taught to the given division.
// An empty division means the subject applies to every division of its year.
func (s Subject) AppliesTo(division string) bool {
	return s.Division == "" || s.Division == division
}

// Length is the contiguous slot span of one session. Practicals default
// to a double slot, theory to a single one.
func (s Subject) Length() int {
	if s.SessionLength > 0 {
		return s.SessionLength
	}
	if s.IsPractical {
		return 2
	}
	return 1
}

// Teacher describes a staff member and the subjects they can teach.
type Teacher struct {
	Name              string   `json:"name" validate:"required"`
	Subjects          []string `json:"subjects"`
	MaxWeeklySessions int      `json:"max_weekly_sessions,omitempty"`
}

// WeeklyCapacity returns the teacher's weekly session cap, defaulting to 25.
func (t Teacher) WeeklyCapacity() int {
	if t.MaxWeeklySessions > 0 {
		return t.MaxWeeklySessions
	}
	return 25
}

// SubjectAssignment is an explicit subject-to-teacher binding. Explicit
// bindings win over competency lists when resolving teachers.
type SubjectAssignment struct {
	Subject string `json:"subject" validate:"required"`
	Teacher string `json:"teacher" validate:"required"`
}

// TeacherPreference captures slot preferences used by soft scoring.
type TeacherPreference struct {
	Teacher        string `json:"teacher" validate:"required"`
	PreferredSlots []int  `json:"preferred_slots,omitempty"`
	AvoidSlots     []int  `json:"avoid_slots,omitempty"`
}

// Curriculum bundles the teaching inputs for a generation run.
type Curriculum struct {
	Subjects    []Subject           `json:"subjects" validate:"required,min=1,dive"`
	Teachers    []Teacher           `json:"teachers" validate:"dive"`
	Assignments []SubjectAssignment `json:"assignments,omitempty" validate:"dive"`
	Preferences []TeacherPreference `json:"preferences,omitempty" validate:"dive"`
}

// SubjectsFor returns the subjects taught to one cohort.
func (c *Curriculum) SubjectsFor(year, division string) []Subject {
	var out []Subject
	for _, s := range c.Subjects {
		if s.Year == year && s.AppliesTo(division) {
			out = append(out, s)
		}
	}
	return out
}

// TheorySubjects returns the non-practical subjects of one cohort.
func (c *Curriculum) TheorySubjects(year, division string) []Subject {
	var out []Subject
	for _, s := range c.SubjectsFor(year, division) {
		if !s.IsPractical {
			out = append(out, s)
		}
	}
	return out
}

// LabSubjects returns the practical subjects of one cohort.
func (c *Curriculum) LabSubjects(year, division string) []Subject {
	var out []Subject
	for _, s := range c.SubjectsFor(year, division) {
		if s.IsPractical {
			out = append(out, s)
		}
	}
	return out
}

// TeachersFor resolves the eligible teachers for a subject: explicit
// assignments first, then competency lists.
func (c *Curriculum) TeachersFor(subject string) []string {
	var out []string
	for _, a := range c.Assignments {
		if a.Subject == subject {
			out = append(out, a.Teacher)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, t := range c.Teachers {
		for _, s := range t.Subjects {
			if s == subject {
				out = append(out, t.Name)
				break
			}
		}
	}
	return out
}

// AssignedTeacher returns the explicitly mapped teacher for a subject,
// or the empty string when no binding exists.
func (c *Curriculum) AssignedTeacher(subject string) string {
	for _, a := range c.Assignments {
		if a.Subject == subject {
			return a.Teacher
		}
	}
	return ""
}

// TeacherByName looks up a teacher record.
func (c *Curriculum) TeacherByName(name string) (Teacher, bool) {
	for _, t := range c.Teachers {
		if t.Name == name {
			return t, true
		}
	}
	return Teacher{}, false
}

// PreferenceFor returns the slot preferences recorded for a teacher.
func (c *Curriculum) PreferenceFor(teacher string) (TeacherPreference, bool) {
	for _, p := range c.Preferences {
		if p.Teacher == teacher {
			return p, true
		}
	}
	return TeacherPreference{}, false
}
