package student

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/mwalimu/insight/core"
)

var (
	// errors
	ErrNotFound    = errors.New("student not found")
	ErrEmailExists = errors.New("a student with this email already exists")
	ErrNoSnapshot  = errors.New("no insight snapshot for this student")
)

type (
	// Repository is the Record Store: durable, per-student history keyed by
	// student id, plus the single insight snapshot row the analytics engine
	// writes back.
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excludedStudents ...Student) error
		CreateStudent(ctx context.Context, stu Student) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		GetStudentByEmail(ctx context.Context, email string) (Student, error)
		UpdateStudent(ctx context.Context, stu Student) (Student, error)
		DeleteStudentsByID(ctx context.Context, ids ...string) error

		GetGPAHistory(ctx context.Context, studentID string) ([]float64, error)
		SetGPAHistory(ctx context.Context, studentID string, gpas []float64) error

		QuerySkills(ctx context.Context, studentID string) ([]Skill, error)
		UpsertSkill(ctx context.Context, skill Skill) (Skill, error)
		DeleteSkills(ctx context.Context, studentID string, names ...string) error

		QueryCourses(ctx context.Context, studentID string) ([]Course, error)
		ReplaceCourses(ctx context.Context, studentID string, courses []Course) error

		QueryCareerInterests(ctx context.Context, studentID string) ([]CareerInterest, error)
		ReplaceCareerInterests(ctx context.Context, studentID string, interests []CareerInterest) error

		// GetSnapshot returns ErrNoSnapshot when no analytics run was persisted yet.
		GetSnapshot(ctx context.Context, studentID string) (Snapshot, error)
		// UpsertSnapshot keeps exactly one row per student; last writer wins.
		UpsertSnapshot(ctx context.Context, snap Snapshot) (Snapshot, error)
	}

	// RiskFunc derives a 0.0-1.0 skill risk from a proficiency level and the
	// student's overall GPA (invalid GPA means "not available").
	RiskFunc func(proficiency int, gpa null.Float64) float64

	Service struct {
		repo   Repository
		riskFn RiskFunc
	}
)

func NewService(repo Repository, riskFn RiskFunc) *Service {
	return &Service{repo: repo, riskFn: riskFn}
}

func (svc *Service) checkUniqueness(ctx context.Context, email string, exclStudents ...Student) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, email, exclStudents...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Register(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(); err != nil {
		return Student{}, err
	}
	if err := svc.checkUniqueness(ctx, ns.Email); err != nil {
		return Student{}, err
	}

	now := time.Now().UTC()
	stu := Student{
		Name:       ns.Name,
		Email:      ns.Email,
		Department: null.NewString(ns.Department, ns.Department != ""),
		University: null.NewString(ns.University, ns.University != ""),
		CurrentGPA: null.Float64FromPtr(ns.CurrentGPA),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateStudent(ctx, stu)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (Student, error) {
	return svc.repo.GetStudentByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	orig, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}
	if err := us.Validate(orig); err != nil {
		return Student{}, err
	}
	if us.Email != orig.Email {
		if err := svc.checkUniqueness(ctx, us.Email, orig); err != nil {
			return Student{}, err
		}
	}

	stu := Student{
		ID:         id,
		Name:       us.Name,
		Email:      us.Email,
		Department: null.NewString(us.Department, us.Department != ""),
		University: null.NewString(us.University, us.University != ""),
		CurrentGPA: null.Float64FromPtr(us.CurrentGPA),
		UpdatedAt:  time.Now().UTC(),
	}
	stu, err = svc.repo.UpdateStudent(ctx, stu)
	if err != nil {
		return Student{}, err
	}

	// a GPA change invalidates the stored per-skill risk scores
	if stu.CurrentGPA != orig.CurrentGPA {
		if err := svc.refreshSkillRisks(ctx, stu); err != nil {
			return Student{}, err
		}
	}
	return stu, nil
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteStudentsByID(ctx, ids...)
}

// SetGPAHistory replaces the student's ordered semester GPA sequence.
func (svc *Service) SetGPAHistory(ctx context.Context, studentID string, gpas []float64) error {
	hist := GPAHistory{GPAs: gpas}
	if err := hist.Validate(); err != nil {
		return err
	}
	if _, err := svc.repo.GetStudentByID(ctx, studentID); err != nil {
		return err
	}
	return svc.repo.SetGPAHistory(ctx, studentID, gpas)
}

func (svc *Service) GPAHistory(ctx context.Context, studentID string) ([]float64, error) {
	if _, err := svc.repo.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}
	return svc.repo.GetGPAHistory(ctx, studentID)
}

// UpsertSkill stores a skill entry, deriving its risk score from the
// proficiency and the student's current GPA.
func (svc *Service) UpsertSkill(ctx context.Context, studentID string, se SkillEntry) (Skill, error) {
	if err := se.Validate(); err != nil {
		return Skill{}, err
	}
	stu, err := svc.repo.GetStudentByID(ctx, studentID)
	if err != nil {
		return Skill{}, err
	}

	skill := Skill{
		StudentID:   stu.ID,
		Name:        se.Name,
		Proficiency: se.Proficiency,
		Risk:        svc.riskFn(se.Proficiency, stu.CurrentGPA),
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repo.UpsertSkill(ctx, skill)
}

func (svc *Service) Skills(ctx context.Context, studentID string) ([]Skill, error) {
	if _, err := svc.repo.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}
	return svc.repo.QuerySkills(ctx, studentID)
}

func (svc *Service) DeleteSkills(ctx context.Context, studentID string, names ...string) error {
	if _, err := svc.repo.GetStudentByID(ctx, studentID); err != nil {
		return err
	}
	return svc.repo.DeleteSkills(ctx, studentID, names...)
}

// ReplaceCourses swaps the student's course list wholesale, deriving letter
// grades from the numeric scores.
func (svc *Service) ReplaceCourses(ctx context.Context, studentID string, entries []CourseEntry) ([]Course, error) {
	stu, err := svc.repo.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	courses := make([]Course, 0, len(entries))
	for i := range entries {
		ce := &entries[i]
		if err := ce.Validate(); err != nil {
			return nil, err
		}
		courses = append(courses, Course{
			StudentID: stu.ID,
			Name:      ce.Name,
			Category:  ce.Category,
			Score:     ce.Score,
			Grade:     null.StringFrom(GradeFromScore(ce.Score)),
		})
	}
	if err := svc.repo.ReplaceCourses(ctx, studentID, courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (svc *Service) Courses(ctx context.Context, studentID string) ([]Course, error) {
	if _, err := svc.repo.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}
	return svc.repo.QueryCourses(ctx, studentID)
}

// ReplaceCareerInterests swaps the student's declared career interests wholesale.
func (svc *Service) ReplaceCareerInterests(ctx context.Context, studentID string, entries []InterestEntry) ([]CareerInterest, error) {
	stu, err := svc.repo.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	interests := make([]CareerInterest, 0, len(entries))
	for i := range entries {
		ie := &entries[i]
		if err := ie.Validate(); err != nil {
			return nil, err
		}
		interests = append(interests, CareerInterest{
			StudentID:  stu.ID,
			Role:       ie.Role,
			MatchScore: ie.MatchScore,
		})
	}
	if err := svc.repo.ReplaceCareerInterests(ctx, studentID, interests); err != nil {
		return nil, err
	}
	return interests, nil
}

func (svc *Service) CareerInterests(ctx context.Context, studentID string) ([]CareerInterest, error) {
	if _, err := svc.repo.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}
	return svc.repo.QueryCareerInterests(ctx, studentID)
}

func (svc *Service) refreshSkillRisks(ctx context.Context, stu Student) error {
	skills, err := svc.repo.QuerySkills(ctx, stu.ID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, skill := range skills {
		skill.Risk = svc.riskFn(skill.Proficiency, stu.CurrentGPA)
		skill.UpdatedAt = now
		if _, err := svc.repo.UpsertSkill(ctx, skill); err != nil {
			return err
		}
	}
	return nil
}
