package ports

import (
	"context"

	"github.com/alejandrodnm/adbot/internal/domain"
)

// TrafficSource entrega los registros de tráfico del log transaccional.
type TrafficSource interface {
	// FetchRecords devuelve los registros de los últimos windowDays días,
	// ya filtrados al canal de pago bajo análisis. Un fallo aquí es
	// "datos no disponibles" y aborta el run.
	FetchRecords(ctx context.Context, windowDays int) ([]domain.TrafficRecord, error)
}
