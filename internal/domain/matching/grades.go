// Package matching scores university courses against a student's results and ranks them.
// Everything here is pure: no I/O and no shared mutable state.
package matching

import (
	"strconv"
	"strings"

	"github.com/yigit/unimatch/internal/app/models"
)

// DefaultFemaleBonus is the flat amount added to a female applicant's weighted score.
const DefaultFemaleBonus = 1.5

var aLevelPoints = map[string]float64{
	"A": 6,
	"B": 5,
	"C": 4,
	"D": 3,
	"E": 2,
	"O": 1,
	"F": 0,
}

// X, Y and Z mark absent, ungraded or withheld papers.
var oLevelPoints = map[string]float64{
	"1": 1, "2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9,
	"X": 0, "Y": 0, "Z": 0,
}

var categoryWeights = map[models.SubjectCategory]float64{
	models.CategoryEssential: 3,
	models.CategoryRelevant:  2,
	models.CategoryDesirable: 1,
}

const fallbackCategoryWeight = 0.5

// PointsForGrade converts a grade to points on the given level's scale.
// Unknown levels and malformed grades are worth 0.
func PointsForGrade(level models.EducationLevel, grade string) float64 {
	key := strings.ToUpper(strings.TrimSpace(grade))
	switch level {
	case models.LevelALevel:
		return aLevelPoints[key]
	case models.LevelOLevel:
		return oLevelPoints[key]
	default:
		return 0
	}
}

// IsValidGrade reports whether grade exists on the level's scale.
func IsValidGrade(level models.EducationLevel, grade string) bool {
	key := strings.ToUpper(strings.TrimSpace(grade))
	var ok bool
	switch level {
	case models.LevelALevel:
		_, ok = aLevelPoints[key]
	case models.LevelOLevel:
		_, ok = oLevelPoints[key]
	}
	return ok
}

// OLevelBonusContribution is the small bonus an O-Level grade adds on top of A-Level
// weighting. It is a separate scale from the direct O-Level points.
func OLevelBonusContribution(grade int) float64 {
	switch {
	case grade >= 1 && grade <= 2:
		return 0.3
	case grade >= 3 && grade <= 6:
		return 0.2
	case grade >= 7 && grade <= 8:
		return 0.1
	default:
		return 0
	}
}

// ParseOLevelGrade reads a numeric O-Level grade; X, Y, Z and garbage report false.
func ParseOLevelGrade(grade string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(grade))
	if err != nil || n < 1 || n > 9 {
		return 0, false
	}
	return n, true
}

// CategoryWeight multiplies a subject's points by how much the course cares about it.
func CategoryWeight(category models.SubjectCategory) float64 {
	if w, ok := categoryWeights[category]; ok {
		return w
	}
	return fallbackCategoryWeight
}

// FemaleBonus returns the default bonus. Scorers may be built with another value.
func FemaleBonus() float64 {
	return DefaultFemaleBonus
}

// TotalPoints sums the points of every grade in a submission.
func TotalPoints(level models.EducationLevel, grades []string) float64 {
	var total float64
	for _, g := range grades {
		total += PointsForGrade(level, g)
	}
	return total
}
