package ports

import (
	"context"

	"github.com/alejandrodnm/adbot/internal/domain"
)

// ReportSink persiste el resumen de cada run de optimización.
// Fire-and-forget desde la perspectiva del core: un fallo se loguea y el run sigue.
type ReportSink interface {
	// WriteRun persiste el run completo: resumen + decisiones por keyword.
	WriteRun(ctx context.Context, run domain.OptimizationRun) error

	// Close cierra la conexión al almacenamiento limpiamente.
	Close() error
}
