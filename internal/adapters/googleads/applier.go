package googleads

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

// Applier implementa ports.ChangeApplier mutando ad_group_criteria.
// Las pujas llegan ya clampeadas; aquí solo se convierten a micros y se envían.
type Applier struct {
	client *Client
}

// NewApplier crea el applier sobre el client dado.
func NewApplier(client *Client) *Applier {
	return &Applier{client: client}
}

// ApplyBid actualiza cpc_bid_micros del criterion con un update mask mínimo.
func (a *Applier) ApplyBid(ctx context.Context, criterionResource string, newBid float64, reason string) error {
	if criterionResource == "" {
		return fmt.Errorf("googleads.ApplyBid: empty criterion resource")
	}
	if newBid <= 0 {
		return fmt.Errorf("googleads.ApplyBid: invalid bid %f", newBid)
	}

	body := mutateCriteriaRequest{
		Operations: []criterionOperation{{
			UpdateMask: "cpc_bid_micros",
			Update: criterionUpdate{
				ResourceName: criterionResource,
				CPCBidMicros: int64(math.Round(newBid * 1e6)),
			},
		}},
	}

	url := fmt.Sprintf("%s/%s/customers/%s/adGroupCriteria:mutate",
		a.client.base, apiVersion, a.client.creds.CustomerID)

	var resp mutateCriteriaResponse
	if err := a.client.post(ctx, a.client.mutateLimiter, url, body, &resp); err != nil {
		return fmt.Errorf("googleads.ApplyBid: %s: %w", criterionResource, err)
	}

	slog.Debug("criterion bid mutated",
		"criterion", criterionResource,
		"new_bid", newBid,
		"reason", reason,
	)
	return nil
}
