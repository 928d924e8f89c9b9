package service

import (
	"fmt"

	"github.com/jfenwick/budget-forecast/internal/engine"
	"github.com/jfenwick/budget-forecast/internal/models"
	"github.com/sirupsen/logrus"
)

// Projection horizon bounds enforced on behalf of the engine, which itself
// accepts any positive range.
const (
	MinRangeYears = 5
	MaxRangeYears = 20
)

// Service handles projection orchestration
type Service struct {
	log *logrus.Logger
}

// NewService initializes a new service
func NewService(log *logrus.Logger) *Service {
	return &Service{log: log}
}

// ProjectPlan projects a plan's events over the given horizon. A zero
// rangeYears falls back to the plan's own range; the result is bounded to
// MinRangeYears..MaxRangeYears.
func (s *Service) ProjectPlan(plan models.Plan, events []models.Event, rangeYears int) ([]models.ChartDataPoint, error) {
	if rangeYears == 0 {
		rangeYears = plan.RangeYears
	}
	if rangeYears < MinRangeYears || rangeYears > MaxRangeYears {
		return nil, fmt.Errorf("range must be between %d and %d years, got %d", MinRangeYears, MaxRangeYears, rangeYears)
	}

	points, err := engine.Project(events, plan.StartDate.Time, rangeYears)
	if err != nil {
		return nil, fmt.Errorf("failed to project plan %s: %w", plan.ID, err)
	}

	s.log.WithFields(logrus.Fields{
		"plan":   plan.ID,
		"events": len(events),
		"months": len(points),
	}).Info("Projection complete")
	return points, nil
}
