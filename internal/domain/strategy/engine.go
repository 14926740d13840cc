package strategy

import "github.com/alejandrodnm/adbot/internal/domain"

// EngineConfig configura el motor de decisiones.
type EngineConfig struct {
	BidStepPct float64 // nudge relativo por paso; 0.10 por defecto
}

// Engine convierte KeywordStats en decisiones bajo una Strategy.
// Es una función pura de (stats, estrategia, umbrales) a Decision: no llama
// a ningún colaborador externo — aplicar los cambios es problema de otro.
//
// Precedencia fija, gana la primera regla que aplica:
//  1. sin clicks            → skip
//  2. sin conversiones      → pause-or-lower
//  3. regla de la estrategia (ROAS / CPA / Manual)
//  4. resto                 → no-change
type Engine struct {
	strategy Strategy
	stepPct  float64
}

// NewEngine crea el motor con la estrategia dada.
func NewEngine(s Strategy, cfg EngineConfig) *Engine {
	if cfg.BidStepPct <= 0 {
		cfg.BidStepPct = 0.10
	}
	return &Engine{strategy: s, stepPct: cfg.BidStepPct}
}

// StrategyName devuelve el nombre de la estrategia activa.
func (e *Engine) StrategyName() string { return e.strategy.Name() }

// Decide produce exactamente una Decision para la keyword.
// Una keyword sin clicks nunca recibe increase/decrease.
func (e *Engine) Decide(keyword string, stats domain.KeywordStats) domain.Decision {
	d := domain.Decision{Keyword: keyword, Stats: stats}

	switch {
	case stats.Clicks == 0:
		d.Action, d.Reason = domain.ActionSkip, "no traffic in attribution window"
	case stats.ConversionCount == 0:
		d.Action, d.Reason = domain.ActionPauseOrLower, "clicks without conversions"
	default:
		if action, reason, ok := e.strategy.Evaluate(stats); ok {
			d.Action, d.Reason = action, reason
		} else {
			d.Action, d.Reason = domain.ActionNoChange, "within thresholds"
		}
	}
	return d
}

// ProposeBid calcula la puja nueva para una acción: nudge de ±stepPct sobre la
// puja actual y clamp duro a [0.7×current, 1.3×current]. El clamp es un
// invariante de seguridad, no una elección de estrategia: se aplica a toda
// salida antes de cualquier mutación externa.
// Para acciones que no ajustan puja devuelve current sin cambios.
func (e *Engine) ProposeBid(current float64, action domain.Action) float64 {
	var raw float64
	switch action {
	case domain.ActionIncrease:
		raw = current * (1 + e.stepPct)
	case domain.ActionDecrease, domain.ActionPauseOrLower:
		raw = current * (1 - e.stepPct)
	default:
		return current
	}
	return domain.ClampBid(current, raw)
}
