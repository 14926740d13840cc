package storage

// sqlite.go — historial de runs de optimización.
//
// Estrategia:
//   - `runs`: una fila por run con el resumen (estrategia, ventana, conteos
//     por acción). Ligera, siempre se escribe.
//   - `decisions`: una fila por keyword y run, con el snapshot de stats que
//     produjo la decisión. Es el reporte auditable.
//   - Prune automático al arrancar: runs (y sus decisiones) > 90 días.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/adbot/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Resumen por run de optimización
CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    campaign_id TEXT     NOT NULL,
    strategy    TEXT     NOT NULL,
    window_days INTEGER  NOT NULL,
    started_at  DATETIME NOT NULL,
    keywords    INTEGER  NOT NULL DEFAULT 0,
    increases   INTEGER  NOT NULL DEFAULT 0,
    decreases   INTEGER  NOT NULL DEFAULT 0,
    paused      INTEGER  NOT NULL DEFAULT 0,
    skipped     INTEGER  NOT NULL DEFAULT 0
);

-- Una fila por keyword y run
CREATE TABLE IF NOT EXISTS decisions (
    run_id           TEXT NOT NULL,
    keyword          TEXT NOT NULL,
    action           TEXT NOT NULL,
    reason           TEXT NOT NULL,
    clicks           INTEGER NOT NULL DEFAULT 0,
    cost             REAL    NOT NULL DEFAULT 0,
    conversion_count INTEGER NOT NULL DEFAULT 0,
    conversion_value REAL    NOT NULL DEFAULT 0,
    avg_cpc          REAL    NOT NULL DEFAULT 0,
    new_bid          REAL    NOT NULL DEFAULT 0,
    apply_error      TEXT    NOT NULL DEFAULT '',
    PRIMARY KEY (run_id, keyword)
);

CREATE INDEX IF NOT EXISTS idx_runs_started     ON runs(started_at DESC);
CREATE INDEX IF NOT EXISTS idx_decisions_run    ON decisions(run_id);
CREATE INDEX IF NOT EXISTS idx_decisions_action ON decisions(action);
`

// retentionRuns controla cuánto histórico se conserva.
const retentionRuns = 90 * 24 * time.Hour

// SQLiteStorage implementa ports.ReportSink usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia runs antiguos.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// WriteRun persiste el resumen del run y sus decisiones en una transacción.
func (s *SQLiteStorage) WriteRun(ctx context.Context, run domain.OptimizationRun) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.WriteRun: begin tx: %w", err)
	}
	defer tx.Rollback()

	counts := run.CountByAction()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, campaign_id, strategy, window_days, started_at,
		                  keywords, increases, decreases, paused, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID, run.CampaignID, run.Strategy, run.WindowDays, run.StartedAt.UTC(),
		len(run.Decisions),
		counts[domain.ActionIncrease],
		counts[domain.ActionDecrease],
		counts[domain.ActionPauseOrLower],
		counts[domain.ActionSkip],
	); err != nil {
		return fmt.Errorf("storage.WriteRun: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO decisions
			(run_id, keyword, action, reason, clicks, cost,
			 conversion_count, conversion_value, avg_cpc, new_bid, apply_error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("storage.WriteRun: prepare: %w", err)
	}
	defer stmt.Close()

	for _, keyword := range run.SortedKeywords() {
		d := run.Decisions[keyword]
		if _, err := stmt.ExecContext(ctx,
			run.ID,
			keyword,
			d.Action.String(),
			d.Reason,
			d.Stats.Clicks,
			d.Stats.Cost,
			d.Stats.ConversionCount,
			d.Stats.ConversionValue,
			d.Stats.AvgCostPerClick(),
			d.NewBid,
			d.ApplyError,
		); err != nil {
			return fmt.Errorf("storage.WriteRun: insert decision %q: %w", keyword, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.WriteRun: commit: %w", err)
	}
	return nil
}

// GetDecisions devuelve las decisiones persistidas de un run, en orden alfabético.
func (s *SQLiteStorage) GetDecisions(ctx context.Context, runID string) ([]domain.Decision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT keyword, action, reason, clicks, cost,
		       conversion_count, conversion_value, new_bid, apply_error
		FROM decisions
		WHERE run_id = ?
		ORDER BY keyword
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage.GetDecisions: query: %w", err)
	}
	defer rows.Close()

	var decisions []domain.Decision
	for rows.Next() {
		var d domain.Decision
		var action string
		if err := rows.Scan(
			&d.Keyword,
			&action,
			&d.Reason,
			&d.Stats.Clicks,
			&d.Stats.Cost,
			&d.Stats.ConversionCount,
			&d.Stats.ConversionValue,
			&d.NewBid,
			&d.ApplyError,
		); err != nil {
			return nil, fmt.Errorf("storage.GetDecisions: scan row: %w", err)
		}
		d.Action = actionFromString(action)
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// pruneOld elimina runs antiguos y sus decisiones para mantener la DB ligera.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionRuns)
	s.db.ExecContext(ctx, `DELETE FROM decisions WHERE run_id IN (SELECT id FROM runs WHERE started_at < ?)`, cutoff)
	s.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff)
}

// actionFromString invierte Action.String() para reconstruir el enum al leer.
func actionFromString(s string) domain.Action {
	switch s {
	case "skip":
		return domain.ActionSkip
	case "pause-or-lower":
		return domain.ActionPauseOrLower
	case "increase":
		return domain.ActionIncrease
	case "decrease":
		return domain.ActionDecrease
	case "review":
		return domain.ActionReview
	default:
		return domain.ActionNoChange
	}
}
