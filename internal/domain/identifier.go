package domain

import (
	"net/url"
	"strings"
)

// Parámetros de click-tracking que Google Ads añade a la URL de destino.
// Un registro produce como mucho un identificador de cada familia.
const (
	paramGclid  = "gclid"
	paramGbraid = "gbraid"
)

// KeywordUnknown es la etiqueta fija para registros sin identificador extraíble.
const KeywordUnknown = "unknown"

// ExtractClickID extrae el identificador de click de una URL de destino.
// Prioriza gclid sobre gbraid y devuelve "" si no hay ninguno.
// Una URL malformada equivale a "sin identificador" — nunca falla.
// De un parámetro repetido solo se usa la primera ocurrencia.
func ExtractClickID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	// ParseQuery conserva los pares que sí pudo parsear aunque devuelva error
	q, _ := url.ParseQuery(u.RawQuery)

	if v := q.Get(paramGclid); v != "" {
		return v
	}
	return q.Get(paramGbraid)
}

// UnmappedKeyword devuelve la etiqueta sintética para un identificador que la
// resolución no pudo mapear a una keyword real. Conserva el identificador
// original para poder auditarlo en el reporte.
func UnmappedKeyword(id string) string {
	return "Unmapped(" + id + ")"
}

// IsUnmapped devuelve true si la keyword es una etiqueta sintética Unmapped(...).
func IsUnmapped(keyword string) bool {
	return strings.HasPrefix(keyword, "Unmapped(") && strings.HasSuffix(keyword, ")")
}
