// Package transform derives the analytical tables from the validated inputs.
//
// The five steps run in a fixed order and each reads explicitly named
// snapshots: product enrichment and order revenue feed customer enrichment,
// while the daily sales aggregation reads the raw orders, items and products,
// never the enriched versions. Steps never mutate their inputs; each returns
// a fresh slice.
package transform

import "math"

func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
