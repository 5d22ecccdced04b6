package student

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/mwalimu/insight/core"
)

var (
	gpaTag  = "gpa"
	gpaText = "GPA must be between 0.0 and 4.0"

	score100Tag  = "score100"
	score100Text = "value must be between 0 and 100"

	categoryTag  = "category"
	categoryText = fmt.Sprintf("category must be one of %v", Categories)
)

// GPAScaleMax is the upper bound of the grading scale.
const GPAScaleMax = 4.0

func init() {
	// register validators
	_ = core.Validate.RegisterValidation(gpaTag, gpaValidation)
	core.RegisterCustomTranslation(gpaTag, gpaText)

	_ = core.Validate.RegisterValidation(score100Tag, score100Validation)
	core.RegisterCustomTranslation(score100Tag, score100Text)

	_ = core.Validate.RegisterValidation(categoryTag, categoryValidation)
	core.RegisterCustomTranslation(categoryTag, categoryText)
}

// Custom Validators

// gpaValidation checks that a GPA value is within the grading-scale bound.
func gpaValidation(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return v >= 0 && v <= GPAScaleMax
}

// score100Validation checks that a proficiency/score value is in [0, 100].
func score100Validation(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= 0 && v <= 100
}

// categoryValidation checks that a course category is one of Categories.
func categoryValidation(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	for _, c := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
