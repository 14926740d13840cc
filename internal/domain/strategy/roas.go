package strategy

import "github.com/alejandrodnm/adbot/internal/domain"

// ROAS sube la puja de las keywords que ya demuestran retorno:
// cualquier valor de conversión positivo se considera favorable.
type ROAS struct{}

// NewROAS crea la estrategia ROAS.
func NewROAS() *ROAS { return &ROAS{} }

func (s *ROAS) Name() string { return "roas" }

// Evaluate implementa Strategy.
func (s *ROAS) Evaluate(stats domain.KeywordStats) (domain.Action, string, bool) {
	if stats.ConversionValue > 0 {
		return domain.ActionIncrease, "favorable return", true
	}
	return 0, "", false
}
