package insight

import (
	"testing"

	"github.com/volatiletech/null/v8"
)

func TestScoreInterests(t *testing.T) {
	tests := []struct {
		name          string
		skills        []string
		strongCourses []string
		want          map[string]int
	}{
		{
			name: "no data scores the noise floor",
			want: map[string]int{"Backend": 0, "Frontend": 0},
		},
		{
			name:   "exact skill matches",
			skills: []string{"Go", "SQL"},
			want:   map[string]int{"Backend": 30, "Frontend": 0},
		},
		{
			name:   "skill match is exact, not substring",
			skills: []string{"Golang"},
			want:   map[string]int{"Backend": 0, "Frontend": 0},
		},
		{
			name:          "strong course substring match",
			strongCourses: []string{"Intro to SQL Databases"},
			want:          map[string]int{"Backend": 10, "Frontend": 0},
		},
		{
			name:          "skills and courses accumulate",
			skills:        []string{"Go"},
			strongCourses: []string{"Advanced SQL"},
			want:          map[string]int{"Backend": 25, "Frontend": 0},
		},
		{
			name:          "course counts once per keyword pair",
			strongCourses: []string{"HTML and CSS Fundamentals"},
			want:          map[string]int{"Backend": 0, "Frontend": 20},
		},
	}

	fields := []CareerField{
		{Name: "Backend", Keywords: []string{"Go", "SQL"}},
		{Name: "Frontend", Keywords: []string{"HTML", "CSS"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreInterests(tt.skills, tt.strongCourses, fields, ZeroNoise)
			if len(got) != len(tt.want) {
				t.Fatalf("ScoreInterests() = %v, want %v", got, tt.want)
			}
			for name, score := range tt.want {
				if got[name] != score {
					t.Errorf("ScoreInterests()[%s] = %d, want %d", name, got[name], score)
				}
			}
		})
	}
}

func TestScoreInterests_catalog(t *testing.T) {
	// two exact matches against the shipped Data Science keywords
	scores := ScoreInterests([]string{"Python", "SQL"}, nil, CareerFields, ZeroNoise)
	if got := scores["Data Science"]; got != 30 {
		t.Errorf("ScoreInterests()[Data Science] = %d, want 30", got)
	}
	if got := scores["Software Development"]; got != 15 { // Python only
		t.Errorf("ScoreInterests()[Software Development] = %d, want 15", got)
	}
}

func TestScoreInterests_capped(t *testing.T) {
	// every Data Science keyword as a skill: 7*15 > 100
	skills := make([]string, 0)
	for _, field := range CareerFields {
		if field.Name == "Data Science" {
			skills = append(skills, field.Keywords...)
		}
	}
	scores := ScoreInterests(skills, nil, CareerFields, ZeroNoise)
	if got := scores["Data Science"]; got != 100 {
		t.Errorf("ScoreInterests()[Data Science] = %d, want capped 100", got)
	}
}

func TestScoreInterests_noiseBounds(t *testing.T) {
	noise := NewNoise(1)
	for i := 0; i < 1000; i++ {
		if n := noise(); n < -5 || n > 14 {
			t.Fatalf("noise() = %d, out of [-5, 14]", n)
		}
	}

	// clamping holds whatever the draw
	for seed := int64(0); seed < 20; seed++ {
		scores := ScoreInterests([]string{"Python"}, nil, CareerFields, NewNoise(seed))
		for name, score := range scores {
			if score < 0 || score > 100 {
				t.Errorf("seed %d: scores[%s] = %d, out of [0, 100]", seed, name, score)
			}
		}
	}
}

func TestScoreInterests_deterministicPerSeed(t *testing.T) {
	a := ScoreInterests([]string{"Python", "SQL"}, []string{"Statistics"}, CareerFields, NewNoise(42))
	b := ScoreInterests([]string{"Python", "SQL"}, []string{"Statistics"}, CareerFields, NewNoise(42))
	for name := range a {
		if a[name] != b[name] {
			t.Errorf("same seed diverged on %s: %d != %d", name, a[name], b[name])
		}
	}
}

func TestTopField(t *testing.T) {
	fields := []CareerField{
		{Name: "A"}, {Name: "B"}, {Name: "C"},
	}
	tests := []struct {
		name   string
		scores map[string]int
		want   string
	}{
		{name: "clear winner", scores: map[string]int{"A": 10, "B": 50, "C": 20}, want: "B"},
		{name: "tie breaks by declaration order", scores: map[string]int{"A": 30, "B": 30, "C": 30}, want: "A"},
		{name: "later tie still first max", scores: map[string]int{"A": 10, "B": 40, "C": 40}, want: "B"},
		{name: "all zero", scores: map[string]int{"A": 0, "B": 0, "C": 0}, want: "A"},
		{name: "no scores", scores: map[string]int{}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TopField(tt.scores, fields); got != tt.want {
				t.Errorf("TopField() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSkillRisk(t *testing.T) {
	tests := []struct {
		name        string
		proficiency int
		gpa         null.Float64
		want        float64
	}{
		{name: "no GPA, low proficiency", proficiency: 20, want: 0.8},
		{name: "no GPA, mid proficiency", proficiency: 40, want: 0.6},
		{name: "no GPA, full proficiency", proficiency: 100, want: 0.0},
		{name: "no GPA, zero proficiency", proficiency: 0, want: 1.0},
		{name: "perfect GPA tempers nothing extra", proficiency: 50, gpa: null.Float64From(4.0), want: 0.4},
		{name: "mid GPA blends in", proficiency: 50, gpa: null.Float64From(2.0), want: 0.5},
		{name: "worst case", proficiency: 0, gpa: null.Float64From(0.0), want: 1.0},
		{name: "best case", proficiency: 100, gpa: null.Float64From(4.0), want: 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SkillRisk(tt.proficiency, tt.gpa); got != tt.want {
				t.Errorf("SkillRisk() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSkillRisk_bounds(t *testing.T) {
	for p := 0; p <= 100; p += 10 {
		for _, gpa := range []null.Float64{{}, null.Float64From(0), null.Float64From(2.2), null.Float64From(4)} {
			if got := SkillRisk(p, gpa); got < 0 || got > 1 {
				t.Errorf("SkillRisk(%d, %v) = %v, out of [0, 1]", p, gpa, got)
			}
		}
	}
}
