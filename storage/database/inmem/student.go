package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mwalimu/insight/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.table))
	for _, stu := range repo.db.table {
		students = append(students, *stu)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].CreatedAt.Before(students[j].CreatedAt) })
	return students
}

func (repo *studentRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedStudents ...student.Student) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, stu := range repo.query() {
		if stu.Email == email && !isExcluded(stu, excludedStudents) {
			return student.ErrEmailExists
		}
	}
	return nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, stu student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	stu.ID = uuid.New().String()
	repo.db.table[stu.ID] = &stu
	return stu, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if stu, ok := repo.db.table[id]; ok {
		return *stu, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) GetStudentByEmail(ctx context.Context, email string) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, stu := range repo.query() {
		if stu.Email == email {
			return stu, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, stu student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[stu.ID]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	orig.Name = stu.Name
	orig.Email = stu.Email
	orig.Department = stu.Department
	orig.University = stu.University
	orig.CurrentGPA = stu.CurrentGPA
	orig.UpdatedAt = stu.UpdatedAt
	return *orig, nil
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
		delete(repo.db.gpas, id)
		delete(repo.db.skills, id)
		delete(repo.db.courses, id)
		delete(repo.db.interests, id)
		delete(repo.db.snapshots, id)
	}
	return nil
}

func (repo *studentRepository) GetGPAHistory(ctx context.Context, studentID string) ([]float64, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	gpas := repo.db.gpas[studentID]
	out := make([]float64, len(gpas))
	copy(out, gpas)
	return out, nil
}

func (repo *studentRepository) SetGPAHistory(ctx context.Context, studentID string, gpas []float64) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cp := make([]float64, len(gpas))
	copy(cp, gpas)
	repo.db.gpas[studentID] = cp
	return nil
}

func (repo *studentRepository) QuerySkills(ctx context.Context, studentID string) ([]student.Skill, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	skills := make([]student.Skill, 0, len(repo.db.skills[studentID]))
	for _, skill := range repo.db.skills[studentID] {
		skills = append(skills, skill)
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i].Name < skills[j].Name })
	return skills, nil
}

func (repo *studentRepository) UpsertSkill(ctx context.Context, skill student.Skill) (student.Skill, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if repo.db.skills[skill.StudentID] == nil {
		repo.db.skills[skill.StudentID] = make(map[string]student.Skill)
	}
	repo.db.skills[skill.StudentID][skill.Name] = skill
	return skill, nil
}

func (repo *studentRepository) DeleteSkills(ctx context.Context, studentID string, names ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, name := range names {
		delete(repo.db.skills[studentID], name)
	}
	return nil
}

func (repo *studentRepository) QueryCourses(ctx context.Context, studentID string) ([]student.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := make([]student.Course, len(repo.db.courses[studentID]))
	copy(courses, repo.db.courses[studentID])
	return courses, nil
}

func (repo *studentRepository) ReplaceCourses(ctx context.Context, studentID string, courses []student.Course) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cp := make([]student.Course, len(courses))
	copy(cp, courses)
	repo.db.courses[studentID] = cp
	return nil
}

func (repo *studentRepository) QueryCareerInterests(ctx context.Context, studentID string) ([]student.CareerInterest, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	interests := make([]student.CareerInterest, len(repo.db.interests[studentID]))
	copy(interests, repo.db.interests[studentID])
	return interests, nil
}

func (repo *studentRepository) ReplaceCareerInterests(ctx context.Context, studentID string, interests []student.CareerInterest) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cp := make([]student.CareerInterest, len(interests))
	copy(cp, interests)
	repo.db.interests[studentID] = cp
	return nil
}

func (repo *studentRepository) GetSnapshot(ctx context.Context, studentID string) (student.Snapshot, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if snap, ok := repo.db.snapshots[studentID]; ok {
		return snap, nil
	}
	return student.Snapshot{}, student.ErrNoSnapshot
}

func (repo *studentRepository) UpsertSnapshot(ctx context.Context, snap student.Snapshot) (student.Snapshot, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.snapshots[snap.StudentID] = snap
	return snap, nil
}

func isExcluded(stu student.Student, excludedStudents []student.Student) bool {
	for _, excl := range excludedStudents {
		if excl.ID == stu.ID {
			return true
		}
	}
	return false
}
