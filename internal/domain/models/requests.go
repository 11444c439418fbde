package models

import "strings"

// Requests for the prediction HTTP endpoints. Defined in domain for reuse by handler tests.

type PredictRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required,max=16,printascii,excludesall= /?#"`
}

// Normalize trims and upper-cases the ticker before validation.
func (r *PredictRequest) Normalize() {
	r.Ticker = strings.ToUpper(strings.TrimSpace(r.Ticker))
}

type SentimentRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required,max=16,printascii,excludesall= /?#"`
}

func (r *SentimentRequest) Normalize() {
	r.Ticker = strings.ToUpper(strings.TrimSpace(r.Ticker))
}
