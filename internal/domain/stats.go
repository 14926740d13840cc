package domain

// KeywordStats acumula las métricas de tráfico atribuidas a una keyword resuelta.
// Vive durante un único run de optimización.
//
// Invariantes tras la agregación:
//   - ConversionCount ≤ Clicks
//   - ConversionValue ≤ Cost
type KeywordStats struct {
	Clicks          int
	Cost            float64
	ConversionCount int
	ConversionValue float64 // subconjunto de Cost donde hubo conversión
}

// AvgCostPerClick devuelve el coste medio por click. 0 si no hay clicks.
func (s KeywordStats) AvgCostPerClick() float64 {
	if s.Clicks == 0 {
		return 0
	}
	return s.Cost / float64(s.Clicks)
}

// AvgCPA devuelve el coste medio por conversión. 0 si no hay conversiones.
func (s KeywordStats) AvgCPA() float64 {
	if s.ConversionCount == 0 {
		return 0
	}
	return s.ConversionValue / float64(s.ConversionCount)
}

// ConversionRate devuelve conversiones/clicks. 0 si no hay clicks.
func (s KeywordStats) ConversionRate() float64 {
	if s.Clicks == 0 {
		return 0
	}
	return float64(s.ConversionCount) / float64(s.Clicks)
}

// StatsMap es el acumulador keyword → stats de un run.
// El acceso pasa siempre por GetOrCreate para que el valor cero quede auditable.
type StatsMap map[string]*KeywordStats

// GetOrCreate devuelve las stats de la keyword, creándolas a cero la primera vez.
func (m StatsMap) GetOrCreate(keyword string) *KeywordStats {
	if s, ok := m[keyword]; ok {
		return s
	}
	s := &KeywordStats{}
	m[keyword] = s
	return s
}

// Snapshot devuelve una copia por valor del acumulador, lista para el reporte.
func (m StatsMap) Snapshot() map[string]KeywordStats {
	out := make(map[string]KeywordStats, len(m))
	for k, s := range m {
		out[k] = *s
	}
	return out
}
