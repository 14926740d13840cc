package ports

import "context"

// ChangeApplier muta pujas en la campaña real. Solo se invoca con dry-run
// desactivado; las pujas llegan ya clampeadas por el motor de decisiones.
type ChangeApplier interface {
	// ApplyBid actualiza la puja CPC del criterion dado. reason acompaña el
	// cambio para trazabilidad. Un fallo afecta solo a esa keyword.
	ApplyBid(ctx context.Context, criterionResource string, newBid float64, reason string) error
}
