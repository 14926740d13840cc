package ports

import (
	"context"

	"github.com/alejandrodnm/adbot/internal/domain"
)

// Notifier presenta el resultado de un run al usuario.
type Notifier interface {
	// Notify muestra las decisiones del run.
	// En la implementación de consola, imprime una tabla formateada.
	Notify(ctx context.Context, run domain.OptimizationRun) error
}
