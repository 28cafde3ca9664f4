/*
Package budget provides the budget analytics service.

PURPOSE:
  Maintains a seeded set of monthly spending categories with per-category
  targets, derives totals and percentage splits, and produces spending
  insights (over-target warnings, under-budget praise, an overall health
  check). Category updates derive a trend from the relative change.

AMOUNTS:
  Category values are dollar amounts held as float64; percentage splits
  are derived with decimal to avoid float artifacts in displayed shares.

SEE ALSO:
  - api/handlers.go: budget endpoints
*/
package budget

import (
	"fmt"
	"math"
	"sync"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TYPES
// =============================================================================

// Trend describes the direction of a category's recent change.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// trendThresholdPercent is the relative change below which a category
// counts as stable.
const trendThresholdPercent = 2.0

// Category is one monthly spending bucket.
type Category struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Value           float64  `json:"value"`
	Percentage      int      `json:"percentage"` // share of the total budget
	Target          float64  `json:"target"`
	Trend           Trend    `json:"trend"`
	TrendPercent    float64  `json:"trend_percent"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}

// MonthlyTrendPoint is one month of the income/expense/savings series.
type MonthlyTrendPoint struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

// SavingsGoal tracks a savings target and progress toward it.
type SavingsGoal struct {
	Target   float64 `json:"target"`
	Current  float64 `json:"current"`
	Timeline string  `json:"timeline"`
}

// Data is a full budget snapshot.
type Data struct {
	TotalBudget  float64             `json:"total_budget"`
	TotalSpent   float64             `json:"total_spent"`
	Categories   []Category          `json:"categories"`
	HealthScore  int                 `json:"health_score"`
	MonthlyTrend []MonthlyTrendPoint `json:"monthly_trend"`
	SavingsGoal  SavingsGoal         `json:"savings_goal"`
}

// InsightType classifies a spending insight.
type InsightType string

const (
	InsightWarning InsightType = "warning"
	InsightSuccess InsightType = "success"
	InsightInfo    InsightType = "info"
)

// Insight is one actionable observation about spending.
type Insight struct {
	Category string      `json:"category"`
	Insight  string      `json:"insight"`
	Type     InsightType `json:"type"`
	Action   string      `json:"action,omitempty"`
}

// =============================================================================
// SERVICE
// =============================================================================

// budgetBuffer is the headroom added above current spending to form the
// total monthly budget.
const budgetBuffer = 500

// Service holds the mutable budget state. Safe for concurrent use.
type Service struct {
	mu   sync.Mutex
	data Data
}

// NewService seeds the default category set.
func NewService() *Service {
	s := &Service{data: seedData()}
	s.recalcLocked()
	return s
}

// Data returns a deep-copied snapshot with recomputed totals.
func (s *Service) Data() Data {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.data
	out.Categories = append([]Category(nil), s.data.Categories...)
	for i := range out.Categories {
		out.Categories[i].Recommendations = append([]string(nil), out.Categories[i].Recommendations...)
	}
	out.MonthlyTrend = append([]MonthlyTrendPoint(nil), s.data.MonthlyTrend...)
	return out
}

// UpdateCategory sets a category's monthly value and derives its trend
// from the relative change. Returns false for an unknown category ID.
func (s *Service) UpdateCategory(id string, newValue float64) bool {
	if newValue < 0 || math.IsNaN(newValue) || math.IsInf(newValue, 0) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Categories {
		c := &s.data.Categories[i]
		if c.ID != id {
			continue
		}

		changePct := 0.0
		if c.Value > 0 {
			changePct = (newValue - c.Value) / c.Value * 100
		}
		c.Trend = TrendStable
		if math.Abs(changePct) >= trendThresholdPercent {
			if changePct > 0 {
				c.Trend = TrendUp
			} else {
				c.Trend = TrendDown
			}
		}
		c.TrendPercent = math.Abs(changePct)
		c.Value = newValue

		s.recalcLocked()
		return true
	}
	return false
}

// Insights reports over-target categories, under-budget wins, and overall
// budget health.
func (s *Service) Insights() []Insight {
	s.mu.Lock()
	defer s.mu.Unlock()

	var insights []Insight
	for _, c := range s.data.Categories {
		switch {
		case c.Value > c.Target:
			overspend := c.Value - c.Target
			pct := decimal.NewFromFloat(overspend / c.Target * 100).Round(1)
			insights = append(insights, Insight{
				Category: c.Name,
				Insight:  fmt.Sprintf("You're spending %s%% more than your target on %s", pct.String(), c.Name),
				Type:     InsightWarning,
				Action:   fmt.Sprintf("Consider reducing %s spending by $%.0f", c.Name, overspend),
			})
		case c.Value < c.Target*0.8:
			insights = append(insights, Insight{
				Category: c.Name,
				Insight:  fmt.Sprintf("Great job staying under budget for %s!", c.Name),
				Type:     InsightSuccess,
			})
		}
	}

	if s.data.TotalSpent > s.data.TotalBudget {
		insights = append(insights, Insight{
			Category: "Overall Budget",
			Insight:  "You're over your total monthly budget",
			Type:     InsightWarning,
			Action:   "Review categories where you can cut back",
		})
	}

	savingsRate := s.savingsRateLocked()
	insights = append(insights, Insight{
		Category: "Savings",
		Insight:  fmt.Sprintf("Your savings allocation is %.0f%% of total spending", savingsRate),
		Type:     InsightInfo,
	})

	return insights
}

// recalcLocked rebuilds totals, percentage splits, and the health score.
// Percentages use decimal so displayed shares don't pick up float noise.
func (s *Service) recalcLocked() {
	spent := 0.0
	for _, c := range s.data.Categories {
		spent += c.Value
	}
	s.data.TotalSpent = spent
	s.data.TotalBudget = spent + budgetBuffer

	total := decimal.NewFromFloat(s.data.TotalBudget)
	for i := range s.data.Categories {
		share := decimal.NewFromFloat(s.data.Categories[i].Value).
			Div(total).Mul(decimal.NewFromInt(100)).Round(0)
		s.data.Categories[i].Percentage = int(share.IntPart())
	}

	s.data.HealthScore = s.healthScoreLocked()
}

// healthScoreLocked scores 0-100: start from 100 and lose points for each
// over-target category in proportion to the overshoot.
func (s *Service) healthScoreLocked() int {
	score := 100.0
	for _, c := range s.data.Categories {
		if c.Target <= 0 || c.Value <= c.Target {
			continue
		}
		overshoot := (c.Value - c.Target) / c.Target
		score -= math.Min(overshoot*50, 15)
	}
	if score < 0 {
		score = 0
	}
	return int(math.Round(score))
}

func (s *Service) savingsRateLocked() float64 {
	if s.data.TotalSpent == 0 {
		return 0
	}
	for _, c := range s.data.Categories {
		if c.ID == "savings" {
			return c.Value / s.data.TotalSpent * 100
		}
	}
	return 0
}

// =============================================================================
// SEED DATA
// =============================================================================

func seedData() Data {
	return Data{
		Categories: []Category{
			{
				ID: "housing", Name: "Housing", Value: 1500, Target: 1400,
				Trend: TrendUp, TrendPercent: 5.2,
				Description: "Rent, utilities, and maintenance costs",
				Recommendations: []string{
					"Consider refinancing your mortgage for better rates",
					"Look into energy-efficient upgrades to reduce utility costs",
				},
			},
			{
				ID: "food", Name: "Food & Dining", Value: 600, Target: 550,
				Trend: TrendDown, TrendPercent: 3.1,
				Description: "Groceries, restaurants, and meal delivery",
				Recommendations: []string{
					"Try meal planning to reduce food waste",
					"Set a weekly dining out budget",
				},
			},
			{
				ID: "transportation", Name: "Transportation", Value: 400, Target: 380,
				Trend: TrendStable, TrendPercent: 0.5,
				Description: "Car payments, gas, insurance, and maintenance",
				Recommendations: []string{
					"Consider carpooling or public transport alternatives",
					"Regular maintenance can prevent costly repairs",
				},
			},
			{
				ID: "utilities", Name: "Utilities", Value: 200, Target: 180,
				Trend: TrendUp, TrendPercent: 8.3,
				Description: "Electricity, water, gas, internet, and phone",
				Recommendations: []string{
					"Switch to LED bulbs to reduce electricity costs",
					"Review and negotiate your internet and phone plans",
				},
			},
			{
				ID: "entertainment", Name: "Entertainment", Value: 300, Target: 250,
				Trend: TrendUp, TrendPercent: 12.5,
				Description: "Movies, subscriptions, hobbies, and leisure activities",
				Recommendations: []string{
					"Audit your subscription services and cancel unused ones",
					"Look for free entertainment alternatives in your area",
				},
			},
			{
				ID: "savings", Name: "Savings & Investments", Value: 500, Target: 650,
				Trend: TrendDown, TrendPercent: 15.2,
				Description: "401k, emergency fund, and investment accounts",
				Recommendations: []string{
					"Increase your 401k contribution to get full employer match",
					"Automate transfers to your savings account",
				},
			},
			{
				ID: "healthcare", Name: "Healthcare", Value: 250, Target: 200,
				Trend: TrendStable, TrendPercent: 1.2,
				Description: "Insurance premiums, medications, and medical expenses",
				Recommendations: []string{
					"Use your HSA for tax-advantaged healthcare savings",
					"Consider preventive care to avoid larger medical costs",
				},
			},
			{
				ID: "other", Name: "Miscellaneous", Value: 550, Target: 400,
				Trend: TrendUp, TrendPercent: 18.7,
				Description: "Shopping, gifts, personal care, and unexpected expenses",
				Recommendations: []string{
					"Track miscellaneous expenses to identify patterns",
					"Set aside a specific amount for impulse purchases",
				},
			},
		},
		MonthlyTrend: []MonthlyTrendPoint{
			{Month: "Jan", Income: 4300, Expenses: 3950, Savings: 350},
			{Month: "Feb", Income: 4300, Expenses: 3750, Savings: 550},
			{Month: "Mar", Income: 4300, Expenses: 3800, Savings: 500},
			{Month: "Apr", Income: 4300, Expenses: 3600, Savings: 700},
			{Month: "May", Income: 4300, Expenses: 3900, Savings: 400},
			{Month: "Jun", Income: 4300, Expenses: 3800, Savings: 500},
		},
		SavingsGoal: SavingsGoal{Target: 10000, Current: 3200, Timeline: "18 months"},
	}
}
