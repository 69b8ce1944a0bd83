package matching

import (
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/yigit/unimatch/internal/app/models"
)

// ErrNoStudentSubjects is returned when there is nothing to score a course against.
var ErrNoStudentSubjects = errors.New("student has no subjects to match")

// Match pairs a catalog course with its score.
type Match struct {
	University *models.University
	Course     *models.Course
	MatchScore float64
}

// Profile is a student's graded record for weighted scoring.
type Profile struct {
	Level        models.EducationLevel
	Results      []models.StudentSubjectResult
	OLevelGrades []int
	IsFemale     bool
}

// CoverageScore is the percentage of required subjects the student holds.
// A course with no required subjects scores 0.
func CoverageScore(studentSubjects map[uuid.UUID]struct{}, required []models.RequiredSubject) float64 {
	if len(required) == 0 {
		return 0
	}
	matched := 0
	for _, rs := range required {
		if _, ok := studentSubjects[rs.SubjectID]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(required)) * 100
}

// RankByCoverage scores every course by subject coverage. Grades play no part.
func RankByCoverage(subjectIDs []uuid.UUID, catalog []models.Course) ([]Match, error) {
	if len(subjectIDs) == 0 {
		return nil, ErrNoStudentSubjects
	}
	held := make(map[uuid.UUID]struct{}, len(subjectIDs))
	for _, id := range subjectIDs {
		held[id] = struct{}{}
	}

	matches := make([]Match, 0, len(catalog))
	for i := range catalog {
		course := &catalog[i]
		matches = append(matches, Match{
			University: course.University,
			Course:     course,
			MatchScore: CoverageScore(held, course.RequiredSubjects),
		})
	}
	sortByScore(matches)
	return matches, nil
}

// Scorer computes weighted scores with a fixed female bonus.
type Scorer struct {
	femaleBonus float64
}

// NewScorer builds a Scorer; a negative bonus falls back to DefaultFemaleBonus.
func NewScorer(femaleBonus float64) *Scorer {
	if femaleBonus < 0 {
		femaleBonus = DefaultFemaleBonus
	}
	return &Scorer{femaleBonus: femaleBonus}
}

// WeightedScore sums grade points times category weight over the required subjects the
// student sat, plus the O-Level bonus and the female bonus. The result is not normalized.
func (s *Scorer) WeightedScore(p Profile, required []models.RequiredSubject) float64 {
	grades := make(map[uuid.UUID]string, len(p.Results))
	for _, r := range p.Results {
		// first occurrence of a subject wins
		if _, seen := grades[r.SubjectID]; !seen {
			grades[r.SubjectID] = r.Grade
		}
	}

	var score float64
	for _, rs := range required {
		grade, ok := grades[rs.SubjectID]
		if !ok {
			continue
		}
		score += PointsForGrade(p.Level, grade) * CategoryWeight(rs.Category)
	}
	for _, g := range p.OLevelGrades {
		score += OLevelBonusContribution(g)
	}
	if p.IsFemale {
		score += s.femaleBonus
	}
	return score
}

// RankByGrades scores every course with WeightedScore.
func (s *Scorer) RankByGrades(p Profile, catalog []models.Course) ([]Match, error) {
	if len(p.Results) == 0 && len(p.OLevelGrades) == 0 {
		return nil, ErrNoStudentSubjects
	}

	matches := make([]Match, 0, len(catalog))
	for i := range catalog {
		course := &catalog[i]
		matches = append(matches, Match{
			University: course.University,
			Course:     course,
			MatchScore: s.WeightedScore(p, course.RequiredSubjects),
		})
	}
	sortByScore(matches)
	return matches, nil
}

// sortByScore orders matches best first; equal scores keep catalog order.
func sortByScore(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
}
