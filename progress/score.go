/*
score.go - Pure progress scoring

PURPOSE:
  Derives the 0-100 progress score from a module's signals. Kept free of
  any store dependency; the persisting "maybe mark complete" step lives in
  service.go.

WEIGHTS:
  sections   min(completed/total, 1) * 60
  engagement min(questions/10, 1)    * 30
  time       min(minutes/30, 1)      * 10
  Each factor is capped at its weight before summation; the rounded sum
  is capped at 100. A module counts as completed at a score of 80.
*/
package progress

import "math"

const (
	sectionWeight    = 60
	engagementWeight = 30
	timeWeight       = 10

	// fullEngagementQuestions and fullTimeMinutes are the caps at which
	// the engagement and time factors max out.
	fullEngagementQuestions = 10
	fullTimeMinutes         = 30

	// CompletionThreshold is the score at which a module is marked
	// completed.
	CompletionThreshold = 80

	// DefaultTotalSections is the section count assumed when a module
	// doesn't declare one.
	DefaultTotalSections = 4
)

// Score computes the weighted 0-100 progress score for one module.
// Monotonically non-decreasing in each of the three signals.
func Score(m ModuleProgress, totalSections int) int {
	if totalSections <= 0 {
		totalSections = DefaultTotalSections
	}

	sections := math.Min(float64(len(m.CompletedSections))/float64(totalSections), 1) * sectionWeight
	engagement := math.Min(float64(m.QuestionsAsked)/fullEngagementQuestions, 1) * engagementWeight
	timeFactor := math.Min(float64(m.TimeSpentMinutes)/fullTimeMinutes, 1) * timeWeight

	total := int(math.Round(sections + engagement + timeFactor))
	if total > 100 {
		total = 100
	}
	return total
}
