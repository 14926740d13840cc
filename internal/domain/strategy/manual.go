package strategy

import "github.com/alejandrodnm/adbot/internal/domain"

// Manual no puja automáticamente: toda keyword con datos queda en revisión.
type Manual struct{}

// NewManual crea la estrategia manual.
func NewManual() *Manual { return &Manual{} }

func (s *Manual) Name() string { return "manual" }

// Evaluate implementa Strategy.
func (s *Manual) Evaluate(domain.KeywordStats) (domain.Action, string, bool) {
	return domain.ActionReview, "manual strategy selected", true
}
