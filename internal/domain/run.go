package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// OptimizationRun es el agregado raíz de una invocación del optimizador:
// estrategia, ventana de atribución y los mapas keyword → stats/decisión.
// Se crea al inicio del run y se descarta tras entregarse al ReportSink.
type OptimizationRun struct {
	ID         string
	CampaignID string
	Strategy   string
	WindowDays int
	StartedAt  time.Time
	Stats      map[string]KeywordStats
	Decisions  map[string]Decision
}

// NewOptimizationRun crea un run vacío con ID propio.
func NewOptimizationRun(campaignID, strategy string, windowDays int) OptimizationRun {
	return OptimizationRun{
		ID:         uuid.New().String(),
		CampaignID: campaignID,
		Strategy:   strategy,
		WindowDays: windowDays,
		StartedAt:  time.Now().UTC(),
		Stats:      make(map[string]KeywordStats),
		Decisions:  make(map[string]Decision),
	}
}

// SortedKeywords devuelve las keywords con decisión en orden alfabético,
// para que reporte y persistencia sean deterministas.
func (r OptimizationRun) SortedKeywords() []string {
	keywords := make([]string, 0, len(r.Decisions))
	for k := range r.Decisions {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)
	return keywords
}

// CountByAction cuenta las decisiones de cada acción.
func (r OptimizationRun) CountByAction() map[Action]int {
	counts := make(map[Action]int, 6)
	for _, d := range r.Decisions {
		counts[d.Action]++
	}
	return counts
}
