package insight

import (
	"math/rand"
	"strings"

	"github.com/volatiletech/null/v8"
)

// Scoring weights. Skills count more than courses: they are direct evidence
// of competency, while a strong course title is only a proxy.
const (
	skillMatchWeight  = 15
	courseMatchWeight = 10
	maxScore          = 100

	// model-uncertainty perturbation: uniform integer in [noiseMin, noiseMin+noiseSpread-1]
	noiseMin    = -5
	noiseSpread = 20
)

// Risk blending weights. A strong overall student is assumed more capable of
// catching up on a weak skill, so the GPA term tempers the proficiency term.
const (
	riskProficiencyWeight = 0.8
	riskGPAWeight         = 0.2
)

// Noise is an injectable source of score perturbation, so tests can pin it.
type Noise func() int

// NewNoise returns the production Noise: a seeded uniform draw from
// [-5, 14] inclusive.
func NewNoise(seed int64) Noise {
	r := rand.New(rand.NewSource(seed))
	return func() int {
		return r.Intn(noiseSpread) + noiseMin
	}
}

// ZeroNoise adds no perturbation. Mostly useful in tests and one-off
// deterministic runs.
func ZeroNoise() int { return 0 }

// ScoreInterests computes a 0-100 fitness score per career field from the
// student's skill names and strong-course names.
//
// Per field: +15 for every skill exactly matching a keyword, +10 for every
// (strong course, keyword) pair where the course name contains the keyword
// as a substring (deliberately loose, to catch course-title variants like
// "Intro to Machine Learning"). The accumulated score is capped at 100,
// perturbed by one noise draw, and clamped back to [0, 100].
//
// Matching is case-sensitive on both sides; callers are expected to store
// skill names as they want them matched.
func ScoreInterests(skills, strongCourses []string, fields []CareerField, noise Noise) map[string]int {
	scores := make(map[string]int, len(fields))
	for _, field := range fields {
		score := 0

		// skills: exact keyword match, at most once per skill
		for _, skill := range skills {
			if containsString(field.Keywords, skill) {
				score += skillMatchWeight
			}
		}

		// strong courses: substring match, once per (course, keyword) pair
		for _, course := range strongCourses {
			for _, kw := range field.Keywords {
				if strings.Contains(course, kw) {
					score += courseMatchWeight
				}
			}
		}

		if score > maxScore {
			score = maxScore
		}
		score += noise()
		if score > maxScore {
			score = maxScore
		}
		if score < 0 {
			score = 0
		}
		scores[field.Name] = score
	}
	return scores
}

// TopField returns the name of the highest-scoring field. Ties break by
// field declaration order (first maximum wins); iteration is over the
// ordered field list, never over the scores map.
func TopField(scores map[string]int, fields []CareerField) string {
	var top string
	best := -1
	for _, field := range fields {
		if score, ok := scores[field.Name]; ok && score > best {
			top = field.Name
			best = score
		}
	}
	return top
}

// SkillRisk derives a 0.0-1.0 risk indicator from a 0-100 proficiency level,
// tempered by the student's overall GPA when available:
//
//	risk = 0.8*(1 - proficiency/100) + 0.2*(1 - gpa/4)
//
// Without a GPA the proficiency complement is used alone. The result is
// rounded to 2 decimals and clamped to [0, 1]. Pure function.
func SkillRisk(proficiency int, gpa null.Float64) float64 {
	base := 1.0 - float64(proficiency)/100
	if !gpa.Valid {
		return round2(clamp(base, 0, 1))
	}
	blended := riskProficiencyWeight*base + riskGPAWeight*(1.0-gpa.Float64/gpaScaleMax)
	return round2(clamp(blended, 0, 1))
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
