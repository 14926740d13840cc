package strategy

import (
	"fmt"

	"github.com/alejandrodnm/adbot/internal/domain"
)

// CPA baja la puja de las keywords cuyo coste medio por conversión supera el
// máximo configurado, o cuya tasa de conversión no llega al mínimo.
type CPA struct {
	maxCPA            float64
	minConversionRate float64
}

// NewCPA crea la estrategia CPA con los umbrales dados.
func NewCPA(th Thresholds) *CPA {
	return &CPA{maxCPA: th.MaxCPA, minConversionRate: th.MinConversionRate}
}

func (s *CPA) Name() string { return "cpa" }

// Evaluate implementa Strategy. La razón incluye los valores numéricos para
// que el reporte sea auditable sin mirar las stats.
func (s *CPA) Evaluate(stats domain.KeywordStats) (domain.Action, string, bool) {
	if avg := stats.AvgCPA(); s.maxCPA > 0 && avg > s.maxCPA {
		return domain.ActionDecrease,
			fmt.Sprintf("avg CPA %.2f above threshold %g", avg, s.maxCPA),
			true
	}
	if rate := stats.ConversionRate(); s.minConversionRate > 0 && rate < s.minConversionRate {
		return domain.ActionDecrease,
			fmt.Sprintf("conversion rate %.3f below minimum %g", rate, s.minConversionRate),
			true
	}
	return 0, "", false
}
