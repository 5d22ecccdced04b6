package main

import (
	"context"
	"fmt"

	"github.com/mwalimu/insight/core"
	"github.com/mwalimu/insight/core/student"
)

type demoStudent struct {
	student   student.NewStudent
	gpas      []float64
	skills    []student.SkillEntry
	courses   []student.CourseEntry
	interests []student.InterestEntry
}

var demoCohort = []demoStudent{
	{
		student: student.NewStudent{
			Name:       "Amina Kalenga",
			Email:      "amina.kalenga@demo.cd",
			Department: "Computer Science",
			University: "UNIKIN",
			CurrentGPA: gpa(3.4),
		},
		gpas: []float64{3.0, 3.2, 3.4},
		skills: []student.SkillEntry{
			{Name: "Python", Proficiency: 85},
			{Name: "SQL", Proficiency: 70},
			{Name: "Machine Learning", Proficiency: 40},
		},
		courses: []student.CourseEntry{
			{Name: "Statistics", Category: student.CategoryStrong, Score: 88},
			{Name: "Data Structures", Category: student.CategoryStrong, Score: 84},
			{Name: "Operating Systems", Category: student.CategoryWeak, Score: 55},
		},
		interests: []student.InterestEntry{
			{Role: "Data Scientist", MatchScore: 80},
		},
	},
	{
		student: student.NewStudent{
			Name:       "Jean-Marc Ilunga",
			Email:      "jm.ilunga@demo.cd",
			Department: "Computer Science",
			University: "UNIKIN",
			CurrentGPA: gpa(2.3),
		},
		gpas: []float64{2.8, 2.5, 2.3},
		skills: []student.SkillEntry{
			{Name: "JavaScript", Proficiency: 60},
			{Name: "HTML", Proficiency: 75},
			{Name: "CSS", Proficiency: 65},
		},
		courses: []student.CourseEntry{
			{Name: "Web Development", Category: student.CategoryStrong, Score: 82},
			{Name: "Calculus", Category: student.CategoryWeak, Score: 48},
		},
		interests: []student.InterestEntry{
			{Role: "Frontend Developer", MatchScore: 70},
		},
	},
	{
		student: student.NewStudent{
			Name:       "Grace Mwamba",
			Email:      "grace.mwamba@demo.cd",
			Department: "Information Systems",
			University: "UPC",
			CurrentGPA: gpa(3.8),
		},
		gpas: []float64{3.6, 3.7, 3.8},
		skills: []student.SkillEntry{
			{Name: "Docker", Proficiency: 80},
			{Name: "Kubernetes", Proficiency: 55},
			{Name: "Linux", Proficiency: 90},
		},
		courses: []student.CourseEntry{
			{Name: "Computer Networks", Category: student.CategoryStrong, Score: 91},
			{Name: "Operating Systems", Category: student.CategoryStrong, Score: 86},
		},
		interests: []student.InterestEntry{
			{Role: "Cloud Engineer", MatchScore: 85},
			{Role: "DevOps Engineer", MatchScore: 75},
		},
	},
}

// seedDemo loads a small demo cohort and generates their insight reports.
// Students that already exist are skipped.
func (cli *commandLine) seedDemo() error {
	ctx := context.Background()

	for _, demo := range demoCohort {
		stu, err := cli.stuSvc.Register(ctx, demo.student)
		if err != nil {
			if _, ok := err.(*core.ValidationError); ok {
				fmt.Printf("skipping %s: already registered\n", demo.student.Email)
				continue
			}
			return err
		}

		if err := cli.stuSvc.SetGPAHistory(ctx, stu.ID, demo.gpas); err != nil {
			return err
		}
		for _, se := range demo.skills {
			if _, err := cli.stuSvc.UpsertSkill(ctx, stu.ID, se); err != nil {
				return err
			}
		}
		if _, err := cli.stuSvc.ReplaceCourses(ctx, stu.ID, demo.courses); err != nil {
			return err
		}
		if _, err := cli.stuSvc.ReplaceCareerInterests(ctx, stu.ID, demo.interests); err != nil {
			return err
		}

		snap, err := cli.insightSvc.Generate(ctx, stu.ID)
		if err != nil {
			return err
		}
		fmt.Printf("seeded %s (predicted GPA %.2f)\n", stu.Email, snap.PredictedGPA)
	}
	return nil
}

func gpa(v float64) *float64 { return &v }
