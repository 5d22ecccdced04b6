package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mwalimu/insight/core"
	"github.com/mwalimu/insight/core/student"
)

// defaultOrdering keeps student listings stable across calls.
var defaultOrdering = core.DBOrdering{Field: "created_at", Ascending: true}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

type studentRow struct {
	ID         string       `db:"id"`
	Name       string       `db:"name"`
	Email      string       `db:"email"`
	Department null.String  `db:"department"`
	University null.String  `db:"university"`
	CurrentGPA null.Float64 `db:"current_gpa"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at"`
}

func (r studentRow) toStudent() student.Student {
	return student.Student{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Department: r.Department,
		University: r.University,
		CurrentGPA: r.CurrentGPA,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toStudentRow(stu student.Student) studentRow {
	return studentRow{
		ID:         stu.ID,
		Name:       stu.Name,
		Email:      stu.Email,
		Department: stu.Department,
		University: stu.University,
		CurrentGPA: stu.CurrentGPA,
		CreatedAt:  stu.CreatedAt.UTC(),
		UpdatedAt:  stu.UpdatedAt.UTC(),
	}
}

type skillRow struct {
	StudentID   string    `db:"student_id"`
	Name        string    `db:"name"`
	Proficiency int       `db:"proficiency"`
	Risk        float64   `db:"risk_score"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type courseRow struct {
	StudentID string      `db:"student_id"`
	Name      string      `db:"name"`
	Category  string      `db:"category"`
	Score     int         `db:"score"`
	Grade     null.String `db:"grade"`
}

type interestRow struct {
	StudentID  string `db:"student_id"`
	Role       string `db:"role"`
	MatchScore int    `db:"match_score"`
}

type snapshotRow struct {
	StudentID       string          `db:"student_id"`
	PredictedGPA    float64         `db:"predicted_gpa"`
	CareerScores    json.RawMessage `db:"career_scores"`
	Recommendations json.RawMessage `db:"recommendations"`
	GeneratedAt     time.Time       `db:"generated_at"`
}

// trapNoRowsErr maps psql "no rows" err to notFound
func (repo studentRepository) trapNoRowsErr(err, notFound error, msg string) error {
	if err == sql.ErrNoRows {
		return notFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedStudents ...student.Student) error {
	q := `SELECT EXISTS (SELECT 1 FROM student WHERE email = $1)`
	args := []interface{}{email}
	if len(excludedStudents) > 0 {
		ids := make([]string, 0, len(excludedStudents))
		for _, stu := range excludedStudents {
			ids = append(ids, stu.ID)
		}
		q = `SELECT EXISTS (SELECT 1 FROM student WHERE email = $1 AND NOT (id = ANY($2)))`
		args = append(args, pq.Array(ids))
	}

	var exists bool
	if err := repo.db.GetContext(ctx, &exists, q, args...); err != nil {
		return errors.Wrap(err, "checking student uniqueness")
	}
	if exists {
		return student.ErrEmailExists
	}
	return nil
}

func (repo studentRepository) CreateStudent(ctx context.Context, stu student.Student) (student.Student, error) {
	stu.ID = uuid.New().String()
	row := toStudentRow(stu)
	q := `INSERT INTO student (id, name, email, department, university, current_gpa, created_at, updated_at)
		  VALUES (:id, :name, :email, :department, :university, :current_gpa, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return row.toStudent(), nil
}

func (repo studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	var rows []studentRow
	q := fmt.Sprintf(`SELECT * FROM student ORDER BY %s`, defaultOrdering)
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}

	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.toStudent())
	}
	return students, nil
}

func (repo studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	if _, err := uuid.Parse(id); err != nil {
		return student.Student{}, student.ErrNotFound
	}
	var row studentRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM student WHERE id = $1`, id); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, student.ErrNotFound, "finding student by ID")
	}
	return row.toStudent(), nil
}

func (repo studentRepository) GetStudentByEmail(ctx context.Context, email string) (student.Student, error) {
	var row studentRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM student WHERE email = $1`, email); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, student.ErrNotFound, "finding student by email")
	}
	return row.toStudent(), nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, stu student.Student) (student.Student, error) {
	row := toStudentRow(stu)
	q := `UPDATE student
		  SET name = :name, email = :email, department = :department, university = :university,
		      current_gpa = :current_gpa, updated_at = :updated_at
		  WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return repo.GetStudentByID(ctx, stu.ID)
}

func (repo studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM student WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return nil
}

func (repo studentRepository) GetGPAHistory(ctx context.Context, studentID string) ([]float64, error) {
	var raw json.RawMessage
	err := repo.db.GetContext(ctx, &raw, `SELECT gpas FROM gpa_history WHERE student_id = $1`, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // no history recorded yet
		}
		return nil, errors.Wrap(err, "querying GPA history")
	}

	var gpas []float64
	if err := json.Unmarshal(raw, &gpas); err != nil {
		return nil, errors.Wrap(err, "decoding GPA history")
	}
	return gpas, nil
}

func (repo studentRepository) SetGPAHistory(ctx context.Context, studentID string, gpas []float64) error {
	if gpas == nil {
		gpas = []float64{}
	}
	raw, err := json.Marshal(gpas)
	if err != nil {
		return errors.Wrap(err, "encoding GPA history")
	}
	q := `INSERT INTO gpa_history (student_id, gpas) VALUES ($1, $2)
		  ON CONFLICT (student_id) DO UPDATE SET gpas = EXCLUDED.gpas`
	if _, err := repo.db.ExecContext(ctx, q, studentID, raw); err != nil {
		return errors.Wrap(err, "saving GPA history")
	}
	return nil
}

func (repo studentRepository) QuerySkills(ctx context.Context, studentID string) ([]student.Skill, error) {
	var rows []skillRow
	q := `SELECT * FROM student_skill WHERE student_id = $1 ORDER BY name`
	if err := repo.db.SelectContext(ctx, &rows, q, studentID); err != nil {
		return nil, errors.Wrap(err, "querying skills")
	}

	skills := make([]student.Skill, 0, len(rows))
	for _, row := range rows {
		skills = append(skills, student.Skill(row))
	}
	return skills, nil
}

func (repo studentRepository) UpsertSkill(ctx context.Context, skill student.Skill) (student.Skill, error) {
	row := skillRow(skill)
	row.UpdatedAt = row.UpdatedAt.UTC()
	q := `INSERT INTO student_skill (student_id, name, proficiency, risk_score, updated_at)
		  VALUES (:student_id, :name, :proficiency, :risk_score, :updated_at)
		  ON CONFLICT (student_id, name) DO UPDATE
		  SET proficiency = EXCLUDED.proficiency, risk_score = EXCLUDED.risk_score, updated_at = EXCLUDED.updated_at`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return student.Skill{}, errors.Wrap(err, "upserting skill")
	}
	return student.Skill(row), nil
}

func (repo studentRepository) DeleteSkills(ctx context.Context, studentID string, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	q := `DELETE FROM student_skill WHERE student_id = $1 AND name = ANY($2)`
	if _, err := repo.db.ExecContext(ctx, q, studentID, pq.Array(names)); err != nil {
		return errors.Wrap(err, "deleting skills")
	}
	return nil
}

func (repo studentRepository) QueryCourses(ctx context.Context, studentID string) ([]student.Course, error) {
	var rows []courseRow
	q := `SELECT * FROM student_course WHERE student_id = $1 ORDER BY name`
	if err := repo.db.SelectContext(ctx, &rows, q, studentID); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}

	courses := make([]student.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, student.Course(row))
	}
	return courses, nil
}

func (repo studentRepository) ReplaceCourses(ctx context.Context, studentID string, courses []student.Course) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM student_course WHERE student_id = $1`, studentID); err != nil {
		return errors.Wrap(err, "clearing courses")
	}
	q := `INSERT INTO student_course (student_id, name, category, score, grade)
		  VALUES (:student_id, :name, :category, :score, :grade)`
	for _, course := range courses {
		if _, err := tx.NamedExecContext(ctx, q, courseRow(course)); err != nil {
			return errors.Wrap(err, "inserting course")
		}
	}
	return errors.Wrap(tx.Commit(), "replacing courses")
}

func (repo studentRepository) QueryCareerInterests(ctx context.Context, studentID string) ([]student.CareerInterest, error) {
	var rows []interestRow
	q := `SELECT * FROM career_interest WHERE student_id = $1 ORDER BY match_score DESC, role`
	if err := repo.db.SelectContext(ctx, &rows, q, studentID); err != nil {
		return nil, errors.Wrap(err, "querying career interests")
	}

	interests := make([]student.CareerInterest, 0, len(rows))
	for _, row := range rows {
		interests = append(interests, student.CareerInterest(row))
	}
	return interests, nil
}

func (repo studentRepository) ReplaceCareerInterests(ctx context.Context, studentID string, interests []student.CareerInterest) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM career_interest WHERE student_id = $1`, studentID); err != nil {
		return errors.Wrap(err, "clearing career interests")
	}
	q := `INSERT INTO career_interest (student_id, role, match_score) VALUES (:student_id, :role, :match_score)`
	for _, interest := range interests {
		if _, err := tx.NamedExecContext(ctx, q, interestRow(interest)); err != nil {
			return errors.Wrap(err, "inserting career interest")
		}
	}
	return errors.Wrap(tx.Commit(), "replacing career interests")
}

func (repo studentRepository) GetSnapshot(ctx context.Context, studentID string) (student.Snapshot, error) {
	var row snapshotRow
	q := `SELECT * FROM insight_snapshot WHERE student_id = $1`
	if err := repo.db.GetContext(ctx, &row, q, studentID); err != nil {
		return student.Snapshot{}, repo.trapNoRowsErr(err, student.ErrNoSnapshot, "finding snapshot")
	}

	snap := student.Snapshot{
		StudentID:    row.StudentID,
		PredictedGPA: row.PredictedGPA,
		GeneratedAt:  row.GeneratedAt,
	}
	if err := json.Unmarshal(row.CareerScores, &snap.CareerScores); err != nil {
		return student.Snapshot{}, errors.Wrap(err, "decoding career scores")
	}
	if err := json.Unmarshal(row.Recommendations, &snap.Recommendations); err != nil {
		return student.Snapshot{}, errors.Wrap(err, "decoding recommendations")
	}
	return snap, nil
}

func (repo studentRepository) UpsertSnapshot(ctx context.Context, snap student.Snapshot) (student.Snapshot, error) {
	scores, err := json.Marshal(snap.CareerScores)
	if err != nil {
		return student.Snapshot{}, errors.Wrap(err, "encoding career scores")
	}
	if snap.Recommendations == nil {
		snap.Recommendations = []string{}
	}
	recs, err := json.Marshal(snap.Recommendations)
	if err != nil {
		return student.Snapshot{}, errors.Wrap(err, "encoding recommendations")
	}

	row := snapshotRow{
		StudentID:       snap.StudentID,
		PredictedGPA:    snap.PredictedGPA,
		CareerScores:    scores,
		Recommendations: recs,
		GeneratedAt:     snap.GeneratedAt.UTC(),
	}
	q := `INSERT INTO insight_snapshot (student_id, predicted_gpa, career_scores, recommendations, generated_at)
		  VALUES (:student_id, :predicted_gpa, :career_scores, :recommendations, :generated_at)
		  ON CONFLICT (student_id) DO UPDATE
		  SET predicted_gpa = EXCLUDED.predicted_gpa, career_scores = EXCLUDED.career_scores,
		      recommendations = EXCLUDED.recommendations, generated_at = EXCLUDED.generated_at`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return student.Snapshot{}, errors.Wrap(err, "upserting snapshot")
	}
	snap.GeneratedAt = row.GeneratedAt
	return snap, nil
}
