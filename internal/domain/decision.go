package domain

// Action es la acción recomendada para una keyword tras un run de optimización.
type Action int

const (
	ActionSkip         Action = iota // sin tráfico — nada que evaluar
	ActionPauseOrLower               // clicks sin conversiones: bajar puja mientras se revisa
	ActionIncrease                   // subir puja
	ActionDecrease                   // bajar puja
	ActionReview                     // revisión manual
	ActionNoChange                   // dentro de umbrales, sin cambio
)

// String devuelve el nombre legible de la acción.
func (a Action) String() string {
	switch a {
	case ActionSkip:
		return "skip"
	case ActionPauseOrLower:
		return "pause-or-lower"
	case ActionIncrease:
		return "increase"
	case ActionDecrease:
		return "decrease"
	case ActionReview:
		return "review"
	case ActionNoChange:
		return "no-change"
	default:
		return "unknown"
	}
}

// Icon devuelve el marcador compacto para la salida de consola.
func (a Action) Icon() string {
	switch a {
	case ActionIncrease:
		return "↑"
	case ActionDecrease:
		return "↓"
	case ActionPauseOrLower:
		return "⏸"
	case ActionReview:
		return "?"
	case ActionNoChange:
		return "="
	default:
		return "·"
	}
}

// AdjustsBid devuelve true si la acción implica proponer una puja nueva.
// pause-or-lower baja la puja como mitigación mientras la keyword se revisa.
func (a Action) AdjustsBid() bool {
	return a == ActionIncrease || a == ActionDecrease || a == ActionPauseOrLower
}

// Decision es el veredicto de un run para una keyword.
// Toda keyword conocida por la campaña recibe exactamente una Decision.
type Decision struct {
	Keyword    string
	Action     Action
	Reason     string       // justificación legible por humanos
	Stats      KeywordStats // snapshot de las métricas que produjeron la decisión
	NewBid     float64      // puja propuesta ya clampeada; 0 si la acción no ajusta puja
	ApplyError string       // error al aplicar el cambio; "" si ok o no se intentó
}

// Límites del clamp de seguridad sobre la puja, relativos a la puja actual.
// Se aplican a TODA estrategia antes de cualquier mutación externa.
const (
	BidClampMin = 0.70
	BidClampMax = 1.30
)

// ClampBid limita una puja calculada a [current×0.7, current×1.3].
// Para current ≤ 0 no hay referencia válida y devuelve raw sin tocar.
func ClampBid(current, raw float64) float64 {
	if current <= 0 {
		return raw
	}
	if lo := current * BidClampMin; raw < lo {
		return lo
	}
	if hi := current * BidClampMax; raw > hi {
		return hi
	}
	return raw
}
