package domain

// CampaignKeyword es una keyword habilitada de la campaña según el directorio
// externo, con su criterion y puja CPC actual.
type CampaignKeyword struct {
	ID       string  // criterion ID numérico
	Resource string  // resource name completo del criterion (para mutaciones)
	Text     string  // texto de la keyword
	CPCBid   float64 // puja CPC actual en unidades de moneda
}
