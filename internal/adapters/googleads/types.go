package googleads

import "encoding/json"

// DTOs del wire format REST de la Google Ads API. searchStream devuelve un
// array de chunks, cada uno con sus filas; los campos numéricos de 64 bits
// llegan como strings JSON.

type searchRequest struct {
	Query string `json:"query"`
}

type searchChunk struct {
	Results []searchRow `json:"results"`
}

type searchRow struct {
	ClickView        *clickView        `json:"clickView,omitempty"`
	AdGroup          *adGroup          `json:"adGroup,omitempty"`
	AdGroupCriterion *adGroupCriterion `json:"adGroupCriterion,omitempty"`
}

type clickView struct {
	Gclid       string       `json:"gclid"`
	AdGroupAd   string       `json:"adGroupAd"` // resource: customers/{cid}/adGroupAds/{agid}~{adid}
	KeywordInfo *keywordInfo `json:"keywordInfo,omitempty"`
}

type adGroup struct {
	ID json.Number `json:"id"`
}

type adGroupCriterion struct {
	ResourceName string       `json:"resourceName"`
	CriterionID  json.Number  `json:"criterionId"`
	Status       string       `json:"status"`
	CPCBidMicros json.Number  `json:"cpcBidMicros"`
	Keyword      *keywordInfo `json:"keyword,omitempty"`
}

type keywordInfo struct {
	Text string `json:"text"`
}

// mutate de criterios: una operación update con field mask.

type mutateCriteriaRequest struct {
	Operations []criterionOperation `json:"operations"`
}

type criterionOperation struct {
	UpdateMask string          `json:"updateMask"`
	Update     criterionUpdate `json:"update"`
}

type criterionUpdate struct {
	ResourceName string `json:"resourceName"`
	CPCBidMicros int64  `json:"cpcBidMicros"`
}

type mutateCriteriaResponse struct {
	Results []mutateResult `json:"results"`
}

type mutateResult struct {
	ResourceName string `json:"resourceName"`
}
