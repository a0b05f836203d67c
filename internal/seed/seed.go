package seed

import (
	"context"
	"fmt"

	"github.com/Simplici0/minecalc/internal/mining"
	"github.com/Simplici0/minecalc/internal/scenario"
)

// BaselineName names the scenario saved by Run.
const BaselineName = "Baseline"

// Config contains the values required by startup seed.
type Config struct {
	Baseline bool
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// DefaultInputs returns the reference scenario the form and CLI start from:
// 120 kt of ore at a 3.0 strip ratio, blasting the full 480 kt moved.
func DefaultInputs() mining.Inputs {
	return mining.Inputs{
		TonnesMinedTarget: 120000,
		StripRatio:        3.0,
		PlantFeedTarget:   100000,

		TonnesBlastedPeriod:         480000,
		LoadFactorKgPerTonne:        0.35,
		ExplosiveCostUsdPerKg:       1.20,
		DrillAccCostPerTonneBlasted: 0.80,

		TruckCount:          10,
		TruckOpHoursPeriod:  6000,
		TruckPayloadTonnes:  100,
		AvgCycleTimeMin:     30.0,
		LoaderCount:         3,
		LoaderOpHoursPeriod: 1800,
		LoaderRateTph:       500,

		PlantOpHoursPeriod: 650,
		PlantThroughputTph: 160,

		GradePct:     1.0,
		RecoveryPct:  85.0,
		MetalPrice:   3.50,
		ExchangeRate: 1.0,

		CostLoadPerHr:    250.0,
		CostHaulPerHr:    300.0,
		CostProcessPerHr: 5000.0,
		CostMaintFixed:   200000.0,
		CostGaFixed:      300000.0,
	}
}

// Run saves the baseline scenario when enabled and the store does not hold
// one yet. It is idempotent.
func Run(ctx context.Context, store scenario.Store, cfg Config) (Stats, error) {
	stats := Stats{}
	if !cfg.Baseline {
		return stats, nil
	}

	saved, err := store.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("list saved scenarios: %w", err)
	}
	for _, s := range saved {
		if s.Name == BaselineName {
			return stats, nil
		}
	}

	if _, _, err := scenario.SaveComputed(ctx, store, BaselineName, DefaultInputs()); err != nil {
		return Stats{}, fmt.Errorf("save baseline scenario: %w", err)
	}
	stats.Inserts++
	return stats, nil
}
