package insight

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/mwalimu/insight/core"
	"github.com/mwalimu/insight/core/student"
)

type (
	// Service generates insight reports on demand and persists them as the
	// student's single snapshot row.
	Service interface {
		// Generate runs the full analytics pass for one student: predicted
		// next-semester GPA, per-field career scores, and the skill-gap
		// recommendation list. A student with no history at all still gets a
		// snapshot (zero prediction, noise-floor scores); only an unknown
		// student id is an error (student.ErrNotFound).
		Generate(ctx context.Context, studentID string) (student.Snapshot, error)
		// LatestSnapshot returns the last persisted snapshot
		// (student.ErrNoSnapshot if the engine never ran for this student).
		LatestSnapshot(ctx context.Context, studentID string) (student.Snapshot, error)
	}

	service struct {
		repo    student.Repository
		mailSvc core.EmailService
		logger  core.Logger
		noise   Noise
	}
)

func NewService(repo student.Repository, mailSvc core.EmailService, logger core.Logger) Service {
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
		logger:  logger,
		noise:   NewNoise(time.Now().UnixNano()),
	}
}

func (svc *service) Generate(ctx context.Context, studentID string) (student.Snapshot, error) {
	stu, err := svc.repo.GetStudentByID(ctx, studentID)
	if err != nil {
		return student.Snapshot{}, err
	}

	gpas, err := svc.repo.GetGPAHistory(ctx, stu.ID)
	if err != nil {
		return student.Snapshot{}, errors.Wrap(err, "loading GPA history")
	}
	skills, err := svc.repo.QuerySkills(ctx, stu.ID)
	if err != nil {
		return student.Snapshot{}, errors.Wrap(err, "loading skills")
	}
	courses, err := svc.repo.QueryCourses(ctx, stu.ID)
	if err != nil {
		return student.Snapshot{}, errors.Wrap(err, "loading courses")
	}

	skillNames := make([]string, 0, len(skills))
	for _, s := range skills {
		skillNames = append(skillNames, s.Name)
	}
	strongCourses := make([]string, 0, len(courses))
	for _, c := range courses {
		if c.Category == student.CategoryStrong {
			strongCourses = append(strongCourses, c.Name)
		}
	}

	predicted := PredictNextGPA(gpas)
	scores := ScoreInterests(skillNames, strongCourses, CareerFields, svc.noise)
	top := TopField(scores, CareerFields)
	recs := RecommendSkills(top, CareerFields, skillNames, DefaultRecommendationLimit)

	snap := student.Snapshot{
		StudentID:       stu.ID,
		PredictedGPA:    predicted,
		CareerScores:    scores,
		Recommendations: recs,
		GeneratedAt:     time.Now().UTC(),
	}
	snap, err = svc.repo.UpsertSnapshot(ctx, snap)
	if err != nil {
		return student.Snapshot{}, errors.Wrap(err, "persisting snapshot")
	}

	// no history means no trend to alert on; a real history predicting 0.0
	// is the worst case and must alert
	if len(gpas) > 0 && predicted < core.Conf.Insight.AtRiskGPA {
		svc.sendAtRiskAlert(stu, snap)
	}
	return snap, nil
}

func (svc *service) LatestSnapshot(ctx context.Context, studentID string) (student.Snapshot, error) {
	if _, err := svc.repo.GetStudentByID(ctx, studentID); err != nil {
		return student.Snapshot{}, err
	}
	return svc.repo.GetSnapshot(ctx, studentID)
}

func (svc *service) sendAtRiskAlert(stu student.Student, snap student.Snapshot) {
	svc.logger.Info(
		fmt.Sprintf("student %s predicted GPA %.2f below %.2f; sending alert", stu.ID, snap.PredictedGPA, core.Conf.Insight.AtRiskGPA),
	)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: stu.Name, Address: stu.Email}},
		Subject:      "Heads up: your predicted GPA needs attention",
		TemplateName: "insight-alert",
		TemplateData: atRiskAlertData{
			Name:            stu.Name,
			PredictedGPA:    snap.PredictedGPA,
			Threshold:       core.Conf.Insight.AtRiskGPA,
			Recommendations: snap.Recommendations,
		},
	})
}

type atRiskAlertData struct {
	Name            string
	PredictedGPA    float64
	Threshold       float64
	Recommendations []string
}
