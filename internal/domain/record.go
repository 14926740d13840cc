package domain

import "time"

// TrafficRecord es un evento de click/landing observado en el log transaccional.
// Inmutable una vez leído; el pase de agregación es su único dueño.
type TrafficRecord struct {
	DestinationURL string    // URL de destino con los parámetros de tracking
	Cost           float64   // coste del click; 0 si la fuente no lo registró
	ConversionKind string    // tag libre; un subconjunto configurado califica como conversión
	PaidSource     bool      // true si el registro proviene del canal de pago bajo análisis
	ObservedAt     time.Time // timestamp del evento (el filtrado por ventana lo hace la fuente)
}
