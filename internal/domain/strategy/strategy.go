package strategy

import (
	"fmt"
	"strings"

	"github.com/alejandrodnm/adbot/internal/domain"
)

// Strategy encapsula la regla de puja específica de cada modo de optimización.
// Evaluate se consulta solo después de las reglas comunes del Engine (sin
// tráfico, sin conversiones); devuelve ok=false si la regla no aplica y la
// keyword queda en no-change.
type Strategy interface {
	Name() string
	Evaluate(stats domain.KeywordStats) (action domain.Action, reason string, ok bool)
}

// Thresholds agrupa los umbrales configurables que consumen las estrategias.
type Thresholds struct {
	MaxCPA            float64 // coste máximo tolerado por conversión
	MinConversionRate float64 // tasa mínima tolerada (p.ej. 0.05 = 5%)
}

// FromName devuelve la estrategia para el nombre configurado.
func FromName(name string, th Thresholds) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "roas":
		return NewROAS(), nil
	case "cpa":
		return NewCPA(th), nil
	case "manual":
		return NewManual(), nil
	default:
		return nil, fmt.Errorf("strategy.FromName: unknown strategy %q", name)
	}
}
