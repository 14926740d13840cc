package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/alejandrodnm/adbot/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Notify imprime el resultado del run en el modo configurado.
func (c *Console) Notify(_ context.Context, run domain.OptimizationRun) error {
	if len(run.Decisions) == 0 {
		fmt.Fprintf(c.out, "[%s] no keywords evaluated\n", time.Now().Format("15:04:05"))
		return nil
	}

	if c.table {
		c.printFull(run)
	} else {
		c.printCompact(run)
	}
	return nil
}

// printCompact imprime el resumen del run en una línea.
func (c *Console) printCompact(run domain.OptimizationRun) {
	counts := run.CountByAction()

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s run %s kw:%d ↑:%d ↓:%d ⏸:%d skip:%d",
		time.Now().Format("15:04:05"),
		run.Strategy,
		shortID(run.ID),
		len(run.Decisions),
		counts[domain.ActionIncrease],
		counts[domain.ActionDecrease],
		counts[domain.ActionPauseOrLower],
		counts[domain.ActionSkip],
	)

	// Las 3 keywords con más gasto, para ver de un vistazo dónde va el dinero
	for _, d := range topByCost(run, 3) {
		fmt.Fprintf(&sb, " | %s %s $%.2f c:%d cv:%d",
			d.Action.Icon(), truncate(d.Keyword, 20), d.Stats.Cost, d.Stats.Clicks, d.Stats.ConversionCount)
	}

	fmt.Fprintln(c.out, sb.String())
}

// printFull imprime la tabla completa de decisiones.
func (c *Console) printFull(run domain.OptimizationRun) {
	counts := run.CountByAction()
	fmt.Fprintf(c.out, "\n[%s] run %s — campaign %s, strategy %s, window %dd — kw:%d ↑:%d ↓:%d ⏸:%d skip:%d\n",
		time.Now().Format("15:04:05"),
		shortID(run.ID),
		run.CampaignID,
		run.Strategy,
		run.WindowDays,
		len(run.Decisions),
		counts[domain.ActionIncrease],
		counts[domain.ActionDecrease],
		counts[domain.ActionPauseOrLower],
		counts[domain.ActionSkip],
	)

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Keyword", "Clicks", "Cost", "Conv", "Value", "CPC", "Action", "New bid", "Reason")

	for i, d := range topByCost(run, len(run.Decisions)) {
		newBid := "-"
		if d.NewBid > 0 {
			newBid = fmt.Sprintf("%.2f", d.NewBid)
		}
		reason := d.Reason
		if d.ApplyError != "" {
			reason += " [apply failed: " + truncate(d.ApplyError, 40) + "]"
		}

		table.Append(
			fmt.Sprintf("%d", i+1),
			truncate(d.Keyword, 40),
			fmt.Sprintf("%d", d.Stats.Clicks),
			fmt.Sprintf("%.2f", d.Stats.Cost),
			fmt.Sprintf("%d", d.Stats.ConversionCount),
			fmt.Sprintf("%.2f", d.Stats.ConversionValue),
			fmt.Sprintf("%.2f", d.Stats.AvgCostPerClick()),
			d.Action.Icon()+" "+d.Action.String(),
			newBid,
			truncate(reason, 50),
		)
	}

	table.Render()
}

// topByCost devuelve hasta n decisiones ordenadas por gasto descendente,
// con empates resueltos alfabéticamente para salida determinista.
func topByCost(run domain.OptimizationRun, n int) []domain.Decision {
	decisions := make([]domain.Decision, 0, len(run.Decisions))
	for _, keyword := range run.SortedKeywords() {
		decisions = append(decisions, run.Decisions[keyword])
	}
	sort.SliceStable(decisions, func(i, j int) bool {
		return decisions[i].Stats.Cost > decisions[j].Stats.Cost
	})
	if len(decisions) > n {
		decisions = decisions[:n]
	}
	return decisions
}

// shortID devuelve los primeros 8 caracteres de un run ID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate recorta s a max caracteres añadiendo "…" si hace falta.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
