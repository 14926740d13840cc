package optimizer

import "github.com/alejandrodnm/adbot/internal/domain"

// Aggregate pliega los registros de tráfico en estadísticas por keyword resuelta.
//
// Reglas de atribución por registro:
//   - sin identificador extraíble      → keyword "unknown"
//   - identificador ausente del mapping → Unmapped(<id>)
//   - el coste suma siempre; si el tag califica como conversión, cuenta la
//     conversión y suma también al valor de conversión
//
// Las keywords habilitadas de la campaña sin tráfico quedan presentes con
// stats a cero, para que el reporte cubra el set completo de la campaña.
// La función es determinista: dos pasadas sobre el mismo input producen
// exactamente las mismas stats.
func Aggregate(
	records []domain.TrafficRecord,
	mapping map[string]string,
	conversionTags map[string]bool,
	enabled []domain.CampaignKeyword,
) domain.StatsMap {
	stats := make(domain.StatsMap, len(enabled))

	for _, kw := range enabled {
		if kw.Text != "" {
			stats.GetOrCreate(kw.Text)
		}
	}

	for _, rec := range records {
		if !rec.PaidSource {
			continue
		}

		keyword := domain.KeywordUnknown
		if id := domain.ExtractClickID(rec.DestinationURL); id != "" {
			if resolved, ok := mapping[id]; ok {
				keyword = resolved
			} else {
				keyword = domain.UnmappedKeyword(id)
			}
		}

		s := stats.GetOrCreate(keyword)
		s.Clicks++

		cost := rec.Cost
		if cost < 0 {
			cost = 0 // coste malformado equivale a ausente
		}
		s.Cost += cost

		if conversionTags[rec.ConversionKind] {
			s.ConversionCount++
			s.ConversionValue += cost
		}
	}

	return stats
}

// ConversionTagSet convierte la lista configurada de tags que califican como
// conversión a un set de consulta.
func ConversionTagSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t != "" {
			set[t] = true
		}
	}
	return set
}

// collectClickIDs extrae el identificador de click de cada registro.
// Los registros sin identificador no aportan nada a la resolución.
func collectClickIDs(records []domain.TrafficRecord) []string {
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		if id := domain.ExtractClickID(rec.DestinationURL); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
