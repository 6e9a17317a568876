package core

import (
	"math"

	"github.com/dailyq/dailyq/schema"
)

// QuestionGrade is the classification of a question's normalized total.
type QuestionGrade struct {
	Band   schema.Band
	Smiley string
	Color  string
}

// ClassifyQuestion quarters the display scale: below the first quarter is bad,
// from three quarters up is good, and everything between is neutral.
// The color uses the same thresholds but treats the first quarter itself as bad.
func ClassifyQuestion(score int, scale schema.Range) QuestionGrade {
	lowerQuadrant := scale.Max / 4
	upperQuadrant := scale.Max/2 + lowerQuadrant
	s := float64(score)

	var grade QuestionGrade
	switch {
	case s < lowerQuadrant:
		grade.Band, grade.Smiley = schema.BadBand, schema.BadSmiley
	case s < upperQuadrant:
		grade.Band, grade.Smiley = schema.NeutralBand, schema.NeutralSmiley
	default:
		grade.Band, grade.Smiley = schema.GoodBand, schema.GoodSmiley
	}

	switch {
	case s <= lowerQuadrant:
		grade.Color = schema.WarningColor
	case s >= upperQuadrant:
		grade.Color = schema.SuccessColor
	default:
		grade.Color = schema.DefaultColor
	}
	return grade
}

// ClassifyDay bands a normalized calendar day: up to half of the scale is bad and
// from three quarters up is good. Both limits are floored to whole numbers.
func ClassifyDay(score int, scale schema.Range) (schema.Band, string) {
	badLimit := math.Floor(scale.Max / 2)
	goodLimit := badLimit + math.Floor(scale.Max/4)
	s := float64(score)

	switch {
	case s <= badLimit:
		return schema.BadBand, schema.WarningColor
	case s >= goodLimit:
		return schema.GoodBand, schema.SuccessColor
	default:
		return schema.NeutralBand, schema.DefaultColor
	}
}
