package optimizer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/adbot/internal/domain"
	"github.com/alejandrodnm/adbot/internal/domain/strategy"
	"github.com/alejandrodnm/adbot/internal/ports"
)

// Config contiene la configuración de un run de optimización.
type Config struct {
	WindowDays        int      // ventana de atribución en días
	ConversionTags    []string // tags de ConversionKind que califican como conversión
	ResolverBatchSize int      // cap de identificadores por consulta al directorio
	DryRun            bool     // true = nunca tocar la campaña real
}

// Optimizer es el orquestador de un run: extracción → resolución → agregación
// → decisiones → reporte → (opcionalmente) aplicación de pujas.
// Las etapas son secuenciales; solo los batches de resolución corren en paralelo.
type Optimizer struct {
	cfg       Config
	traffic   ports.TrafficSource
	directory ports.CampaignDirectory
	applier   ports.ChangeApplier
	sink      ports.ReportSink
	notifier  ports.Notifier
	engine    *strategy.Engine
	resolver  *Resolver
}

// New crea un Optimizer con todas las dependencias inyectadas.
// sink, notifier y applier pueden ser nil (se saltan esas etapas).
func New(
	cfg Config,
	traffic ports.TrafficSource,
	directory ports.CampaignDirectory,
	applier ports.ChangeApplier,
	sink ports.ReportSink,
	notifier ports.Notifier,
	engine *strategy.Engine,
) *Optimizer {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 30
	}
	return &Optimizer{
		cfg:       cfg,
		traffic:   traffic,
		directory: directory,
		applier:   applier,
		sink:      sink,
		notifier:  notifier,
		engine:    engine,
		resolver:  NewResolver(directory, cfg.ResolverBatchSize),
	}
}

// Run ejecuta una pasada completa de optimización para la campaña dada.
// El run devuelto contiene stats y decisiones aunque el reporte o la
// aplicación de cambios fallen; solo fallos de datos (tráfico, keywords)
// abortan el run.
func (o *Optimizer) Run(ctx context.Context, campaignID string) (domain.OptimizationRun, error) {
	start := time.Now()
	run := domain.NewOptimizationRun(campaignID, o.engine.StrategyName(), o.cfg.WindowDays)

	records, err := o.traffic.FetchRecords(ctx, o.cfg.WindowDays)
	if err != nil {
		return run, fmt.Errorf("optimizer.Run: fetch traffic: %w", err)
	}

	mapping := o.resolver.Resolve(ctx, collectClickIDs(records))

	enabled, err := o.directory.ListEnabledKeywords(ctx, campaignID)
	if err != nil {
		return run, fmt.Errorf("optimizer.Run: list enabled keywords: %w", err)
	}

	stats := Aggregate(records, mapping, ConversionTagSet(o.cfg.ConversionTags), enabled)
	run.Stats = stats.Snapshot()

	// Una decisión por keyword, incluidas las de stats a cero.
	bids := keywordsByText(enabled)
	for keyword, s := range run.Stats {
		d := o.engine.Decide(keyword, s)
		if kw, ok := bids[keyword]; ok && d.Action.AdjustsBid() {
			d.NewBid = o.engine.ProposeBid(kw.CPCBid, d.Action)
		}
		run.Decisions[keyword] = d
	}

	// El flag dry-run solo gatea la frontera de aplicación: las decisiones
	// de arriba son idénticas con o sin él.
	if !o.cfg.DryRun && o.applier != nil {
		o.applyChanges(ctx, &run, bids)
	}

	if o.sink != nil {
		if err := o.sink.WriteRun(ctx, run); err != nil {
			slog.Warn("report sink error", "run_id", run.ID, "err", err)
		}
	}
	if o.notifier != nil {
		if err := o.notifier.Notify(ctx, run); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}

	counts := run.CountByAction()
	slog.Info("optimization run complete",
		"run_id", run.ID,
		"campaign", campaignID,
		"strategy", run.Strategy,
		"records", len(records),
		"keywords", len(run.Decisions),
		"increase", counts[domain.ActionIncrease],
		"decrease", counts[domain.ActionDecrease],
		"pause", counts[domain.ActionPauseOrLower],
		"skip", counts[domain.ActionSkip],
		"dry_run", o.cfg.DryRun,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return run, nil
}

// applyChanges aplica las pujas propuestas vía el ChangeApplier.
// Un fallo se registra en la Decision de esa keyword y el resto continúa.
// Solo las keywords reales de la campaña tienen criterion que mutar: las
// etiquetas sintéticas (unknown / Unmapped) se ignoran aquí.
func (o *Optimizer) applyChanges(ctx context.Context, run *domain.OptimizationRun, bids map[string]domain.CampaignKeyword) {
	for _, keyword := range run.SortedKeywords() {
		d := run.Decisions[keyword]
		if !d.Action.AdjustsBid() || d.NewBid <= 0 {
			continue
		}
		kw, ok := bids[keyword]
		if !ok || kw.CPCBid <= 0 || d.NewBid == kw.CPCBid {
			continue
		}

		if err := o.applier.ApplyBid(ctx, kw.Resource, d.NewBid, d.Reason); err != nil {
			d.ApplyError = err.Error()
			run.Decisions[keyword] = d
			slog.Warn("bid change failed",
				"keyword", keyword,
				"criterion", kw.Resource,
				"err", err,
			)
			continue
		}

		slog.Info("bid updated",
			"keyword", keyword,
			"criterion", kw.Resource,
			"old_bid", kw.CPCBid,
			"new_bid", d.NewBid,
			"action", d.Action.String(),
		)
	}
}

// keywordsByText indexa las keywords habilitadas por su texto.
func keywordsByText(enabled []domain.CampaignKeyword) map[string]domain.CampaignKeyword {
	out := make(map[string]domain.CampaignKeyword, len(enabled))
	for _, kw := range enabled {
		if kw.Text != "" {
			out[kw.Text] = kw
		}
	}
	return out
}
