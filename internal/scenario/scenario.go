// Package scenario keeps the append-only list of saved scenario runs used for
// side-by-side comparison.
package scenario

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/minecalc/internal/mining"
)

// Saved is an immutable snapshot of one computed scenario.
type Saved struct {
	ID      uuid.UUID     `json:"id"`
	Seq     int64         `json:"seq"`
	Name    string        `json:"name"`
	SavedAt time.Time     `json:"savedAt"`
	Inputs  mining.Inputs `json:"inputs"`
	Outputs Outputs       `json:"outputs"`
}

// Outputs holds the subset of results and KPIs kept with a saved scenario.
type Outputs struct {
	Revenue                 float64 `json:"revenue"`
	TotalCost               float64 `json:"totalCost"`
	OperatingProfit         float64 `json:"operatingProfit"`
	CostPerTonneProcessed   float64 `json:"costPerTonneProcessed"`
	ProfitPerTonneProcessed float64 `json:"profitPerTonneProcessed"`
	ActualTonnesPerTruckHr  float64 `json:"actualTonnesPerTruckHr"`
	ActualTonnesPerLoaderHr float64 `json:"actualTonnesPerLoaderHr"`
	ActualTphPlant          float64 `json:"actualTphPlant"`
	CostPerTotalTonneMoved  float64 `json:"costPerTotalTonneMoved"`
	CostExplosives          float64 `json:"costExplosives"`
	CostDrillAccessories    float64 `json:"costDrillAccessories"`
}

// OutputsFrom copies the saved subset out of a computed report.
func OutputsFrom(rep mining.Report) Outputs {
	return Outputs{
		Revenue:                 rep.Results.Revenue,
		TotalCost:               rep.Results.TotalCost,
		OperatingProfit:         rep.Results.OperatingProfit,
		CostPerTonneProcessed:   rep.Results.CostPerTonneProcessed,
		ProfitPerTonneProcessed: rep.Results.ProfitPerTonneProcessed,
		ActualTonnesPerTruckHr:  rep.KPIs.ActualTonnesPerTruckHr,
		ActualTonnesPerLoaderHr: rep.KPIs.ActualTonnesPerLoaderHr,
		ActualTphPlant:          rep.KPIs.ActualTphPlant,
		CostPerTotalTonneMoved:  rep.KPIs.CostPerTotalTonneMoved,
		CostExplosives:          rep.Results.CostExplosives,
		CostDrillAccessories:    rep.Results.CostDrillAccessories,
	}
}

// Store is an ordered, append-only collection of saved scenarios.
// Implementations serialize Save and Clear.
type Store interface {
	// Save appends a snapshot. An empty name becomes "Scenario N", where N
	// counts every save made so far, including those removed by Clear.
	Save(ctx context.Context, name string, in mining.Inputs, rep mining.Report) (Saved, error)
	// List returns the snapshots in insertion order.
	List(ctx context.Context) ([]Saved, error)
	// Clear removes every snapshot.
	Clear(ctx context.Context) error
}

// SaveComputed runs the engine and saves the result. Nothing is stored when
// the computation fails; the engine error is returned unchanged.
func SaveComputed(ctx context.Context, store Store, name string, in mining.Inputs) (Saved, mining.Report, error) {
	rep, err := mining.Compute(in)
	if err != nil {
		return Saved{}, mining.Report{}, err
	}
	saved, err := store.Save(ctx, name, in, rep)
	if err != nil {
		return Saved{}, rep, fmt.Errorf("save scenario: %w", err)
	}
	return saved, rep, nil
}

func resolveName(name string, seq int64) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return fmt.Sprintf("Scenario %d", seq)
}
