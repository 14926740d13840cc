package domain

import (
	"fmt"
	"strings"
)

// AdGroupRef identifica el par ad-group/ad embebido en un resource path compuesto.
type AdGroupRef struct {
	AdGroupID string
	AdID      string
}

const adGroupAdSegment = "/adGroupAds/"

// ParseAdGroupAdResource parsea un resource path de la forma
//
//	prefix/adGroupAds/{ad_group_id}~{ad_id}
//
// donde ambos IDs son secuencias no vacías de dígitos. Devuelve un error
// descriptivo (no un valor nulo) cuando el path no cumple la gramática, para
// que el manejo de input malformado sea testeable directamente.
func ParseAdGroupAdResource(resource string) (AdGroupRef, error) {
	idx := strings.LastIndex(resource, adGroupAdSegment)
	if idx < 0 {
		return AdGroupRef{}, fmt.Errorf("domain.ParseAdGroupAdResource: %q: missing %q segment", resource, adGroupAdSegment)
	}

	pair := resource[idx+len(adGroupAdSegment):]
	adGroupID, adID, ok := strings.Cut(pair, "~")
	if !ok {
		return AdGroupRef{}, fmt.Errorf("domain.ParseAdGroupAdResource: %q: missing '~' separator", resource)
	}
	if !isDigits(adGroupID) || !isDigits(adID) {
		return AdGroupRef{}, fmt.Errorf("domain.ParseAdGroupAdResource: %q: ids must be digits", resource)
	}

	return AdGroupRef{AdGroupID: adGroupID, AdID: adID}, nil
}

// isDigits devuelve true si s es una secuencia no vacía de dígitos ASCII.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
