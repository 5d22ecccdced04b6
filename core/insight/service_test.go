package insight

import (
	"context"
	"reflect"
	"testing"

	"github.com/mwalimu/insight/core/student"
	"github.com/mwalimu/insight/services/email"
	"github.com/mwalimu/insight/storage/database/inmem"
	"github.com/mwalimu/insight/tests"
)

func setup(t *testing.T, noise Noise) (Service, student.Repository) {
	t.Helper()
	repo := inmemdb.NewStudentRepository(inmemdb.NewDB())
	mailSvc := emailsvc.NewConsoleServiceMock()
	svc := NewServiceMock(repo, mailSvc, testLogger{}, noise)
	return svc, repo
}

// testLogger drops everything; the orchestrator logs alerts we don't assert on.
type testLogger struct{}

func (testLogger) Enable(bool)                  {}
func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

func TestService_Generate_unknownStudent(t *testing.T) {
	svc, _ := setup(t, ZeroNoise)
	if _, err := svc.Generate(context.Background(), "4ae5ce76-0000-0000-0000-000000000000"); err != student.ErrNotFound {
		t.Errorf("Generate() error = %v, want %v", err, student.ErrNotFound)
	}
}

func TestService_Generate_emptyRecords(t *testing.T) {
	svc, repo := setup(t, ZeroNoise)
	ctx := context.Background()
	stu := testutil.CreateStudent(t, repo, "Blank Slate", "blank@test.cd", nil)

	snap, err := svc.Generate(ctx, stu.ID)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if snap.PredictedGPA != 0.0 {
		t.Errorf("PredictedGPA = %v, want 0.0", snap.PredictedGPA)
	}
	for name, score := range snap.CareerScores {
		if score != 0 {
			t.Errorf("CareerScores[%s] = %d, want 0", name, score)
		}
	}
	// all-zero scores tie-break to the first catalog field; the student knows
	// nothing, so its leading keywords come back as recommendations
	want := []string{"Python", "Java", "C++", "JavaScript", "React"}
	if !reflect.DeepEqual(snap.Recommendations, want) {
		t.Errorf("Recommendations = %v, want %v", snap.Recommendations, want)
	}

	got, err := svc.LatestSnapshot(ctx, stu.ID)
	if err != nil {
		t.Fatalf("LatestSnapshot() failed: %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Errorf("LatestSnapshot() = %+v, want %+v", got, snap)
	}
}

func TestService_Generate_fullRecords(t *testing.T) {
	svc, repo := setup(t, ZeroNoise)
	ctx := context.Background()
	stu := testutil.CreateStudent(t, repo, "Amina K", "amina@test.cd", testutil.GPA(3.4))
	testutil.SetGPAHistory(t, repo, stu.ID, []float64{3.0, 3.2, 3.4})
	testutil.AddSkill(t, repo, stu.ID, "Python", 85, 0.15)
	testutil.AddSkill(t, repo, stu.ID, "SQL", 70, 0.27)
	testutil.SetCourses(t, repo, stu.ID,
		student.Course{Name: "Statistics", Category: student.CategoryStrong, Score: 88},
		student.Course{Name: "Operating Systems", Category: student.CategoryWeak, Score: 55},
	)

	snap, err := svc.Generate(ctx, stu.ID)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if snap.PredictedGPA != 3.6 {
		t.Errorf("PredictedGPA = %v, want 3.6", snap.PredictedGPA)
	}
	// Python + SQL exact matches, "Statistics" strong-course substring match
	if got := snap.CareerScores["Data Science"]; got != 40 {
		t.Errorf("CareerScores[Data Science] = %d, want 40", got)
	}
	// weak course must not contribute
	if got := snap.CareerScores["Cloud Computing"]; got != 0 {
		t.Errorf("CareerScores[Cloud Computing] = %d, want 0", got)
	}
	// gap for the top field, known skills excluded
	want := []string{"Data Analysis", "Machine Learning", "Statistics", "Calculus", "Linear Algebra"}
	if !reflect.DeepEqual(snap.Recommendations, want) {
		t.Errorf("Recommendations = %v, want %v", snap.Recommendations, want)
	}
}

func TestService_Generate_deterministicPerSeed(t *testing.T) {
	ctx := context.Background()
	run := func(seed int64) student.Snapshot {
		svc, repo := setup(t, NewNoise(seed))
		stu := testutil.CreateStudent(t, repo, "Same Seed", "seed@test.cd", nil)
		testutil.AddSkill(t, repo, stu.ID, "Python", 60, 0.4)
		snap, err := svc.Generate(ctx, stu.ID)
		if err != nil {
			t.Fatalf("Generate() failed: %v", err)
		}
		return snap
	}

	a, b := run(42), run(42)
	if !reflect.DeepEqual(a.CareerScores, b.CareerScores) {
		t.Errorf("same seed diverged: %v != %v", a.CareerScores, b.CareerScores)
	}
	if !reflect.DeepEqual(a.Recommendations, b.Recommendations) {
		t.Errorf("same seed diverged: %v != %v", a.Recommendations, b.Recommendations)
	}
}

func TestService_Generate_idempotentOnUnchangedRecords(t *testing.T) {
	svc, repo := setup(t, ZeroNoise)
	ctx := context.Background()
	stu := testutil.CreateStudent(t, repo, "Twice", "twice@test.cd", testutil.GPA(3.2))
	testutil.SetGPAHistory(t, repo, stu.ID, []float64{3.0, 3.2})
	testutil.AddSkill(t, repo, stu.ID, "Python", 70, 0.24)

	first, err := svc.Generate(ctx, stu.ID)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	second, err := svc.Generate(ctx, stu.ID)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if second.PredictedGPA != first.PredictedGPA {
		t.Errorf("PredictedGPA changed between runs: %v != %v", second.PredictedGPA, first.PredictedGPA)
	}
	if !reflect.DeepEqual(second.CareerScores, first.CareerScores) {
		t.Errorf("CareerScores changed between runs: %v != %v", second.CareerScores, first.CareerScores)
	}
	if !reflect.DeepEqual(second.Recommendations, first.Recommendations) {
		t.Errorf("Recommendations changed between runs: %v != %v", second.Recommendations, first.Recommendations)
	}
}

func TestService_Generate_overwritesSnapshot(t *testing.T) {
	svc, repo := setup(t, ZeroNoise)
	ctx := context.Background()
	stu := testutil.CreateStudent(t, repo, "Regen", "regen@test.cd", nil)
	testutil.SetGPAHistory(t, repo, stu.ID, []float64{3.0, 3.2})

	first, err := svc.Generate(ctx, stu.ID)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	// history changes; a rerun must replace, not accumulate
	testutil.SetGPAHistory(t, repo, stu.ID, []float64{3.0, 3.2, 2.8})
	second, err := svc.Generate(ctx, stu.ID)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if second.PredictedGPA == first.PredictedGPA {
		t.Errorf("expected a new prediction after history change; still %v", first.PredictedGPA)
	}

	got, err := repo.GetSnapshot(ctx, stu.ID)
	if err != nil {
		t.Fatalf("GetSnapshot() failed: %v", err)
	}
	if got.PredictedGPA != second.PredictedGPA {
		t.Errorf("stored snapshot = %v, want latest %v", got.PredictedGPA, second.PredictedGPA)
	}
}

func TestService_Generate_atRiskAlert(t *testing.T) {
	svc, repo := setup(t, ZeroNoise)
	ctx := context.Background()

	tests := []struct {
		name      string
		email     string
		gpas      []float64
		wantAlert bool
	}{
		{name: "declining below threshold", email: "risk@test.cd", gpas: []float64{2.6, 2.4, 2.2}, wantAlert: true},
		{name: "collapsing history clamped to zero", email: "worst@test.cd", gpas: []float64{0.5, 0.1}, wantAlert: true},
		{name: "healthy trend", email: "fine@test.cd", gpas: []float64{3.0, 3.2}, wantAlert: false},
		{name: "no history means no alert", email: "new@test.cd", gpas: nil, wantAlert: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emailsvc.ClearSentMessages()
			stu := testutil.CreateStudent(t, repo, "T", tt.email, nil)
			if tt.gpas != nil {
				testutil.SetGPAHistory(t, repo, stu.ID, tt.gpas)
			}
			if _, err := svc.Generate(ctx, stu.ID); err != nil {
				t.Fatalf("Generate() failed: %v", err)
			}

			msgs := emailsvc.GetSentMessages()
			if tt.wantAlert {
				if len(msgs) != 1 {
					t.Fatalf("sent %d alerts, want 1", len(msgs))
				}
				if to := msgs[0].To[0].Address; to != tt.email {
					t.Errorf("alert sent to %s, want %s", to, tt.email)
				}
			} else if len(msgs) != 0 {
				t.Errorf("sent %d alerts, want none", len(msgs))
			}
		})
	}
}

func TestService_LatestSnapshot_neverGenerated(t *testing.T) {
	svc, repo := setup(t, ZeroNoise)
	stu := testutil.CreateStudent(t, repo, "No Run", "norun@test.cd", nil)

	if _, err := svc.LatestSnapshot(context.Background(), stu.ID); err != student.ErrNoSnapshot {
		t.Errorf("LatestSnapshot() error = %v, want %v", err, student.ErrNoSnapshot)
	}
}
