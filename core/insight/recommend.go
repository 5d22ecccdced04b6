package insight

// DefaultRecommendationLimit bounds the recommendation list of one analytics run.
const DefaultRecommendationLimit = 5

// RecommendSkills returns the top field's keywords the student does not
// already have, preserving keyword declaration order, truncated to limit.
// An unknown field or one without keywords yields an empty list, not an error.
func RecommendSkills(topField string, fields []CareerField, knownSkills []string, limit int) []string {
	var keywords []string
	for _, field := range fields {
		if field.Name == topField {
			keywords = field.Keywords
			break
		}
	}

	recs := make([]string, 0, limit)
	for _, kw := range keywords {
		if len(recs) >= limit {
			break
		}
		if !containsString(knownSkills, kw) {
			recs = append(recs, kw)
		}
	}
	return recs
}
