package seed

import (
	"context"
	"testing"

	"github.com/Simplici0/minecalc/internal/db"
	"github.com/Simplici0/minecalc/internal/migrations"
	"github.com/Simplici0/minecalc/internal/mining"
	"github.com/Simplici0/minecalc/internal/scenario"
)

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	database, err := db.Open(db.MemoryDSN)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	if err := migrations.Up(ctx, database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	store, err := scenario.NewSQLStore(ctx, database)
	if err != nil {
		t.Fatalf("new sql store: %v", err)
	}

	for i := 0; i < 10; i++ {
		stats, err := Run(ctx, store, Config{Baseline: true})
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 1 {
				t.Fatalf("expected 1 insert in first run, got %d", stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	saved, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list scenarios: %v", err)
	}
	if len(saved) != 1 || saved[0].Name != BaselineName {
		t.Fatalf("expected a single baseline scenario, got %+v", saved)
	}
	if saved[0].Inputs != DefaultInputs() {
		t.Fatalf("baseline inputs differ from defaults: %+v", saved[0].Inputs)
	}
}

func TestRunDisabledDoesNothing(t *testing.T) {
	store := scenario.NewMemoryStore()

	stats, err := Run(context.Background(), store, Config{})
	if err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if stats.Inserts != 0 {
		t.Fatalf("expected no inserts, got %d", stats.Inserts)
	}
}

func TestDefaultInputsComputeWithoutWarnings(t *testing.T) {
	rep, err := mining.Compute(DefaultInputs())
	if err != nil {
		t.Fatalf("compute defaults: %v", err)
	}
	if len(rep.Warnings) != 0 {
		t.Fatalf("expected defaults to fit fleet and plant capacity, got %+v", rep.Warnings)
	}
}
