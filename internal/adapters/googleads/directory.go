package googleads

// directory.go — Google Ads como CampaignDirectory.
//
// Dos modos de resolución, según qué expone la cuenta en click_view:
//   - direct:  click_view trae keyword_info directamente → una consulta.
//   - adgroup: click_view solo trae el ad_group_ad → dos saltos:
//     click → ad-group (parseando el resource compuesto) → primera keyword
//     del ad-group.

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alejandrodnm/adbot/internal/domain"
)

// ResolutionMode selecciona el algoritmo de resolución de identificadores.
type ResolutionMode string

const (
	ModeDirect  ResolutionMode = "direct"
	ModeAdGroup ResolutionMode = "adgroup"
)

// Directory implementa ports.CampaignDirectory sobre la Google Ads API.
type Directory struct {
	client *Client
	mode   ResolutionMode
}

// NewDirectory crea el directorio. Un modo desconocido cae a direct.
func NewDirectory(client *Client, mode ResolutionMode) *Directory {
	if mode != ModeAdGroup {
		mode = ModeDirect
	}
	return &Directory{client: client, mode: mode}
}

// ResolveIdentifiers resuelve un batch de identificadores de click a texto de
// keyword. El map devuelto omite los identificadores que la API no conoce.
func (d *Directory) ResolveIdentifiers(ctx context.Context, batch []string) (map[string]string, error) {
	if len(batch) == 0 {
		return map[string]string{}, nil
	}
	if d.mode == ModeAdGroup {
		return d.resolveViaAdGroups(ctx, batch)
	}
	return d.resolveDirect(ctx, batch)
}

// resolveDirect hace identificador → keyword en una sola consulta.
func (d *Directory) resolveDirect(ctx context.Context, batch []string) (map[string]string, error) {
	query := fmt.Sprintf(
		`SELECT click_view.gclid, click_view.keyword_info.text FROM click_view WHERE click_view.gclid IN (%s)`,
		quoteList(batch),
	)

	rows, err := d.client.searchStream(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("googleads.resolveDirect: %w", err)
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		cv := row.ClickView
		if cv == nil || cv.Gclid == "" || cv.KeywordInfo == nil || cv.KeywordInfo.Text == "" {
			continue
		}
		out[cv.Gclid] = cv.KeywordInfo.Text
	}
	return out, nil
}

// resolveViaAdGroups hace los dos saltos: identificador → ad-group y
// ad-group → primera keyword asociada. Un resource que no cumple la gramática
// deja su identificador sin resolver (el caller lo degradará a unmapped).
func (d *Directory) resolveViaAdGroups(ctx context.Context, batch []string) (map[string]string, error) {
	query := fmt.Sprintf(
		`SELECT click_view.gclid, click_view.ad_group_ad FROM click_view WHERE click_view.gclid IN (%s)`,
		quoteList(batch),
	)

	rows, err := d.client.searchStream(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("googleads.resolveViaAdGroups: clicks: %w", err)
	}

	adGroupByID := make(map[string]string, len(rows)) // gclid → adGroupID
	for _, row := range rows {
		cv := row.ClickView
		if cv == nil || cv.Gclid == "" || cv.AdGroupAd == "" {
			continue
		}
		ref, err := domain.ParseAdGroupAdResource(cv.AdGroupAd)
		if err != nil {
			slog.Debug("unparseable ad_group_ad resource", "gclid", cv.Gclid, "err", err)
			continue
		}
		adGroupByID[cv.Gclid] = ref.AdGroupID
	}

	if len(adGroupByID) == 0 {
		return map[string]string{}, nil
	}

	keywords, err := d.firstKeywordPerAdGroup(ctx, uniqueValues(adGroupByID))
	if err != nil {
		return nil, fmt.Errorf("googleads.resolveViaAdGroups: keywords: %w", err)
	}

	out := make(map[string]string, len(adGroupByID))
	for gclid, adGroupID := range adGroupByID {
		if kw, ok := keywords[adGroupID]; ok {
			out[gclid] = kw
		}
		// ad-group sin keyword asociada → el identificador queda sin entrada
	}
	return out, nil
}

// firstKeywordPerAdGroup devuelve la primera keyword de cada ad-group.
func (d *Directory) firstKeywordPerAdGroup(ctx context.Context, adGroupIDs []string) (map[string]string, error) {
	query := fmt.Sprintf(
		`SELECT ad_group.id, ad_group_criterion.keyword.text FROM keyword_view WHERE ad_group.id IN (%s)`,
		strings.Join(adGroupIDs, ", "),
	)

	rows, err := d.client.searchStream(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(adGroupIDs))
	for _, row := range rows {
		if row.AdGroup == nil || row.AdGroupCriterion == nil || row.AdGroupCriterion.Keyword == nil {
			continue
		}
		id := row.AdGroup.ID.String()
		if _, seen := out[id]; seen {
			continue // nos quedamos con la primera
		}
		if text := row.AdGroupCriterion.Keyword.Text; text != "" {
			out[id] = text
		}
	}
	return out, nil
}

// ListEnabledKeywords devuelve las keywords habilitadas de la campaña con su
// criterion y puja CPC actual.
func (d *Directory) ListEnabledKeywords(ctx context.Context, campaignID string) ([]domain.CampaignKeyword, error) {
	query := fmt.Sprintf(
		`SELECT ad_group_criterion.resource_name, ad_group_criterion.criterion_id, `+
			`ad_group_criterion.keyword.text, ad_group_criterion.cpc_bid_micros `+
			`FROM ad_group_criterion `+
			`WHERE campaign.id = %s AND ad_group_criterion.type = 'KEYWORD' AND ad_group_criterion.status = 'ENABLED'`,
		campaignID,
	)

	rows, err := d.client.searchStream(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("googleads.ListEnabledKeywords: %w", err)
	}

	keywords := make([]domain.CampaignKeyword, 0, len(rows))
	for _, row := range rows {
		c := row.AdGroupCriterion
		if c == nil || c.Keyword == nil || c.Keyword.Text == "" {
			continue
		}
		micros, _ := c.CPCBidMicros.Int64()
		keywords = append(keywords, domain.CampaignKeyword{
			ID:       c.CriterionID.String(),
			Resource: c.ResourceName,
			Text:     c.Keyword.Text,
			CPCBid:   float64(micros) / 1e6,
		})
	}

	slog.Debug("enabled keywords fetched", "campaign", campaignID, "count", len(keywords))
	return keywords, nil
}

// quoteList arma la lista GAQL 'id1', 'id2', ... escapando comillas simples.
func quoteList(ids []string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = "'" + strings.ReplaceAll(id, "'", "\\'") + "'"
	}
	return strings.Join(quoted, ", ")
}

// uniqueValues devuelve los valores únicos del map, en orden indefinido.
func uniqueValues(m map[string]string) []string {
	seen := make(map[string]bool, len(m))
	out := make([]string, 0, len(m))
	for _, v := range m {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
