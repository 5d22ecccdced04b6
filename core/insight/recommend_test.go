package insight

import (
	"reflect"
	"testing"
)

func TestRecommendSkills(t *testing.T) {
	tests := []struct {
		name        string
		topField    string
		knownSkills []string
		limit       int
		want        []string
	}{
		{
			name:     "full gap",
			topField: "Data Science",
			limit:    DefaultRecommendationLimit,
			want:     []string{"Python", "SQL", "Data Analysis", "Machine Learning", "Statistics"},
		},
		{
			name:        "known skills excluded, order preserved",
			topField:    "Data Science",
			knownSkills: []string{"Python"},
			limit:       DefaultRecommendationLimit,
			want:        []string{"SQL", "Data Analysis", "Machine Learning", "Statistics", "Calculus"},
		},
		{
			name:        "limit truncates",
			topField:    "Data Science",
			knownSkills: []string{"Python"},
			limit:       2,
			want:        []string{"SQL", "Data Analysis"},
		},
		{
			name:        "all keywords known",
			topField:    "Web Development",
			knownSkills: []string{"JavaScript", "React", "Node.js", "HTML", "CSS", "Web Development"},
			limit:       DefaultRecommendationLimit,
			want:        []string{},
		},
		{
			name:     "unknown field yields empty, not error",
			topField: "Quantum Basket Weaving",
			limit:    DefaultRecommendationLimit,
			want:     []string{},
		},
		{
			name:     "empty field name",
			topField: "",
			limit:    DefaultRecommendationLimit,
			want:     []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecommendSkills(tt.topField, CareerFields, tt.knownSkills, tt.limit)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RecommendSkills() = %v, want %v", got, tt.want)
			}
		})
	}
}
