package ports

import (
	"context"

	"github.com/alejandrodnm/adbot/internal/domain"
)

// CampaignDirectory resuelve identidades de la campaña contra el servicio externo.
type CampaignDirectory interface {
	// ResolveIdentifiers resuelve UN batch de identificadores de click
	// (≤ cap del servicio externo) a texto de keyword. El map devuelto puede
	// omitir identificadores que el directorio no conoce; nunca inventa claves.
	// El chunking y la degradación a "unmapped" son responsabilidad del caller.
	ResolveIdentifiers(ctx context.Context, batch []string) (map[string]string, error)

	// ListEnabledKeywords devuelve las keywords habilitadas de la campaña,
	// con criterion y puja CPC actual. Incluye keywords sin tráfico.
	ListEnabledKeywords(ctx context.Context, campaignID string) ([]domain.CampaignKeyword, error)
}
