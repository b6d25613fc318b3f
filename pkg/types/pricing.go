// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PriceRecord holds the pricing fields for one model from the local price
// table. Configuration and Discount are passed through as-is because the
// file's producer does not fix their shape.
type PriceRecord struct {
	PriceUSD      *float64 `json:"price_usd" yaml:"price_usd"`
	Configuration any      `json:"configuration,omitempty" yaml:"configuration,omitempty"`
	Discount      any      `json:"discount,omitempty" yaml:"discount,omitempty"`
}
