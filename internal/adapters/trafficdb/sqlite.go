package trafficdb

// sqlite.go — log transaccional de clicks como TrafficSource.
//
// La tabla `clicks` es el log de landing events que alimenta la atribución.
// El filtrado a canal de pago y ventana de atribución se hace en SQL, así el
// core recibe solo los registros que le tocan.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/adbot/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS clicks (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    destination_url TEXT     NOT NULL,
    cost            REAL,
    conversion_kind TEXT,
    paid_source     INTEGER  NOT NULL DEFAULT 0,
    observed_at     DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_clicks_observed ON clicks(observed_at DESC);
CREATE INDEX IF NOT EXISTS idx_clicks_paid     ON clicks(paid_source);
`

// ClickLog implementa ports.TrafficSource sobre SQLite (pure Go, sin CGo).
type ClickLog struct {
	db *sql.DB
}

// Open abre (o crea) el log de clicks en la ruta dada y aplica el schema.
func Open(path string) (*ClickLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("trafficdb.Open: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("trafficdb.Open: apply schema: %w", err)
	}
	return &ClickLog{db: db}, nil
}

// FetchRecords devuelve los clicks del canal de pago de los últimos windowDays días.
// Un coste NULL se trata como 0 — input malformado nunca es fatal.
func (c *ClickLog) FetchRecords(ctx context.Context, windowDays int) ([]domain.TrafficRecord, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -windowDays)

	rows, err := c.db.QueryContext(ctx, `
		SELECT destination_url, cost, conversion_kind, observed_at
		FROM clicks
		WHERE paid_source = 1 AND observed_at >= ?
		ORDER BY observed_at
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("trafficdb.FetchRecords: query: %w", err)
	}
	defer rows.Close()

	var records []domain.TrafficRecord
	for rows.Next() {
		var (
			rec        domain.TrafficRecord
			cost       sql.NullFloat64
			kind       sql.NullString
			observedAt string
		)
		if err := rows.Scan(&rec.DestinationURL, &cost, &kind, &observedAt); err != nil {
			return nil, fmt.Errorf("trafficdb.FetchRecords: scan row: %w", err)
		}

		rec.PaidSource = true
		if cost.Valid && cost.Float64 > 0 {
			rec.Cost = cost.Float64
		}
		rec.ConversionKind = kind.String
		rec.ObservedAt = parseObservedAt(observedAt)

		records = append(records, rec)
	}
	return records, rows.Err()
}

// Seed inserta registros en el log. Pensado para tests y fixtures locales.
func (c *ClickLog) Seed(ctx context.Context, records []domain.TrafficRecord) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("trafficdb.Seed: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO clicks (destination_url, cost, conversion_kind, paid_source, observed_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("trafficdb.Seed: prepare: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		paid := 0
		if rec.PaidSource {
			paid = 1
		}
		if _, err := stmt.ExecContext(ctx,
			rec.DestinationURL, rec.Cost, rec.ConversionKind, paid, rec.ObservedAt.UTC(),
		); err != nil {
			return fmt.Errorf("trafficdb.Seed: insert: %w", err)
		}
	}
	return tx.Commit()
}

// Close cierra la conexión a la base de datos.
func (c *ClickLog) Close() error {
	return c.db.Close()
}

// parseObservedAt tolera los formatos de fecha habituales en logs SQLite.
// Un timestamp imparseable queda en cero: el filtrado por ventana ya lo hizo SQL.
func parseObservedAt(raw string) time.Time {
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
