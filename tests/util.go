package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/mwalimu/insight/core/student"
)

func CreateStudent(
	t *testing.T,
	repo student.Repository,
	name, email string,
	currentGPA *float64,
	createdAt ...time.Time,
) student.Student {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	stu := student.Student{
		Name:       name,
		Email:      email,
		CurrentGPA: null.Float64FromPtr(currentGPA),
		CreatedAt:  tstamp,
		UpdatedAt:  tstamp,
	}
	stu, err := repo.CreateStudent(context.Background(), stu)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return stu
}

func SetGPAHistory(t *testing.T, repo student.Repository, studentID string, gpas []float64) {
	if err := repo.SetGPAHistory(context.Background(), studentID, gpas); err != nil {
		t.Fatalf("SetGPAHistory() failed: %v", err)
	}
}

func AddSkill(t *testing.T, repo student.Repository, studentID, name string, proficiency int, risk float64) student.Skill {
	skill, err := repo.UpsertSkill(context.Background(), student.Skill{
		StudentID:   studentID,
		Name:        name,
		Proficiency: proficiency,
		Risk:        risk,
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("AddSkill() failed: %v", err)
	}
	return skill
}

func SetCourses(t *testing.T, repo student.Repository, studentID string, courses ...student.Course) {
	for i := range courses {
		courses[i].StudentID = studentID
	}
	if err := repo.ReplaceCourses(context.Background(), studentID, courses); err != nil {
		t.Fatalf("SetCourses() failed: %v", err)
	}
}

func GPA(v float64) *float64 { return &v }
