package student

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/mwalimu/insight/core"
)

// Course categories
const (
	CategoryStrong  = "strong"
	CategoryWeak    = "weak"
	CategoryAverage = "average"
)

var Categories = []string{CategoryStrong, CategoryWeak, CategoryAverage}

// gradeAThreshold is the numeric score above which a course is graded "A".
// Policy constant, not a law; everything at or below gets a "B".
const gradeAThreshold = 80

// GradeFromScore derives a letter grade from a 0-100 course score.
func GradeFromScore(score int) string {
	if score > gradeAThreshold {
		return "A"
	}
	return "B"
}

type Student struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Department null.String  `json:"department,omitempty"`
	University null.String  `json:"university,omitempty"`
	CurrentGPA null.Float64 `json:"current_gpa,omitempty"`
	CreatedAt  time.Time    `json:"created_at,omitempty"`
	UpdatedAt  time.Time    `json:"updated_at,omitempty"`
}

// Skill is one self/teacher-reported skill with its proficiency and the
// risk score last derived from it.
type Skill struct {
	StudentID   string    `json:"student_id"`
	Name        string    `json:"name"`
	Proficiency int       `json:"proficiency"`
	Risk        float64   `json:"risk"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

type Course struct {
	StudentID string      `json:"student_id"`
	Name      string      `json:"name"`
	Category  string      `json:"category"`
	Score     int         `json:"score"`
	Grade     null.String `json:"grade,omitempty"`
}

// CareerInterest is a role the student declared themselves interested in,
// with their own 0-100 estimate of how well they match it.
type CareerInterest struct {
	StudentID  string `json:"student_id"`
	Role       string `json:"role"`
	MatchScore int    `json:"match_score"`
}

// Snapshot is the persisted output bundle of one analytics run.
// One row is retained per student; regenerating overwrites it.
type Snapshot struct {
	StudentID       string         `json:"student_id"`
	PredictedGPA    float64        `json:"predicted_gpa"`
	CareerScores    map[string]int `json:"career_scores"`
	Recommendations []string       `json:"recommendations"`
	GeneratedAt     time.Time      `json:"generated_at"`
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	Name       string   `json:"name" validate:"required"`
	Email      string   `json:"email" validate:"required,email"`
	Department string   `json:"department"`
	University string   `json:"university"`
	CurrentGPA *float64 `json:"current_gpa" validate:"omitempty,gpa"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Department = core.CleanString(ns.Department)
	ns.University = core.CleanString(ns.University)
	return core.TranslateValidationErrors(core.Validate.Struct(ns))
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Empty fields keep their current values.
type UpdateStudent struct {
	Name       string   `json:"name"`
	Email      string   `json:"email" validate:"omitempty,email"`
	Department string   `json:"department"`
	University string   `json:"university"`
	CurrentGPA *float64 `json:"current_gpa" validate:"omitempty,gpa"`
}

func (us *UpdateStudent) Validate(orig Student) error {
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}
	if email := core.CleanString(us.Email, true /* lower */); email != "" {
		us.Email = email
	} else {
		us.Email = orig.Email
	}
	if dept := core.CleanString(us.Department); dept != "" {
		us.Department = dept
	} else {
		us.Department = orig.Department.String
	}
	if uni := core.CleanString(us.University); uni != "" {
		us.University = uni
	} else {
		us.University = orig.University.String
	}
	if us.CurrentGPA == nil {
		us.CurrentGPA = orig.CurrentGPA.Ptr()
	}
	return core.TranslateValidationErrors(core.Validate.Struct(us))
}

// GPAHistory is the ordered semester GPA sequence supplied by the host
// application. Insertion order is chronological order.
type GPAHistory struct {
	GPAs []float64 `json:"gpas" validate:"dive,gpa"`
}

func (h GPAHistory) Validate() error {
	return core.TranslateValidationErrors(core.Validate.Struct(h))
}

// SkillEntry is the ingestion form of a Skill; the risk score is derived
// on write, never supplied by the caller.
type SkillEntry struct {
	Name        string `json:"name" validate:"required"`
	Proficiency int    `json:"proficiency" validate:"score100"`
}

func (se *SkillEntry) Validate() error {
	se.Name = core.CleanString(se.Name)
	return core.TranslateValidationErrors(core.Validate.Struct(se))
}

// CourseEntry is the ingestion form of a Course; the letter grade is derived
// from the score on write.
type CourseEntry struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required,category"`
	Score    int    `json:"score" validate:"score100"`
}

func (ce *CourseEntry) Validate() error {
	ce.Name = core.CleanString(ce.Name)
	ce.Category = core.CleanString(ce.Category, true /* lower */)
	return core.TranslateValidationErrors(core.Validate.Struct(ce))
}

// InterestEntry is the ingestion form of a CareerInterest.
type InterestEntry struct {
	Role       string `json:"role" validate:"required"`
	MatchScore int    `json:"match_score" validate:"score100"`
}

func (ie *InterestEntry) Validate() error {
	ie.Role = core.CleanString(ie.Role)
	return core.TranslateValidationErrors(core.Validate.Struct(ie))
}
