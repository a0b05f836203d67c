package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/minecalc/internal/mining"
	"github.com/Simplici0/minecalc/internal/scenario"
	"github.com/Simplici0/minecalc/internal/seed"
)

func TestNumberAndMoney(t *testing.T) {
	cases := []struct {
		v      float64
		places int32
		want   string
	}{
		{201600, 0, "201,600"},
		{2975, 2, "2,975.00"},
		{43.626, 2, "43.63"},
		{0.35, 2, "0.35"},
		{-4359625, 0, "-4,359,625"},
		{-0.4, 2, "-0.40"},
		{999.999, 2, "1,000.00"},
		{1e20, 0, "100,000,000,000,000,000,000"},
		{-3e19, 2, "-30,000,000,000,000,000,000.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Number(tc.v, tc.places), "Number(%v, %d)", tc.v, tc.places)
	}
	assert.Equal(t, "$ 1,234.50", Money(1234.5, 2))
	assert.Equal(t, "$ -30,000,000,000,000,000,000.00", Money(-3e19, 2))
}

func TestTextIncludesFiguresAndWarnings(t *testing.T) {
	in := seed.DefaultInputs()
	in.TonnesBlastedPeriod = 500000
	rep, err := mining.Compute(in)
	require.NoError(t, err)

	body := Text(in, rep)
	for _, want := range []string{
		"Revenue: $ 2,975",
		"Explosives: $ 210,000",
		"Material moved: 480,000 t",
		"Warnings:",
		"tonnes blasted (500,000t)",
	} {
		assert.Contains(t, body, want)
	}
}

func TestErrorsListsEveryViolation(t *testing.T) {
	in := seed.DefaultInputs()
	in.TonnesMinedTarget = 0
	in.PlantFeedTarget = 0
	_, err := mining.Compute(in)
	require.Error(t, err)

	body := Errors(err)
	assert.Equal(t, 3, strings.Count(body, "\n"))
	assert.Contains(t, body, "target tonnes mined")
	assert.Contains(t, body, "target plant feed")
}

func TestCostBreakdownSkipsZeroComponents(t *testing.T) {
	slices := CostBreakdown(mining.Results{CostExplosives: 10, CostLoading: 0, CostProcessing: 5})
	require.Len(t, slices, 2)
	assert.Equal(t, "Explosives", slices[0].Component)
	assert.Equal(t, "Processing", slices[1].Component)
}

func TestWaterfallEndsAtProfit(t *testing.T) {
	rep, err := mining.Compute(seed.DefaultInputs())
	require.NoError(t, err)
	r := rep.Results

	steps := Waterfall(r)
	require.Len(t, steps, 4)
	sum := 0.0
	for _, s := range steps[:3] {
		sum += s.Value
	}
	assert.InDelta(t, r.OperatingProfit, sum, 1e-6)
	assert.Equal(t, MeasureTotal, steps[3].Measure)
	assert.InDelta(t, r.OperatingProfit, steps[3].Value, 1e-9)
}

func TestCompareAndCharts(t *testing.T) {
	saved := []scenario.Saved{
		{
			Name:    "A",
			Inputs:  mining.Inputs{TonnesBlastedPeriod: 1000, LoadFactorKgPerTonne: 0.3, MetalPrice: 3},
			Outputs: scenario.Outputs{CostExplosives: 300, CostDrillAccessories: 700, OperatingProfit: 50},
		},
		{
			Name:    "B",
			Inputs:  mining.Inputs{LoadFactorKgPerTonne: 0.4},
			Outputs: scenario.Outputs{CostExplosives: 10},
		},
	}

	rows := Compare(saved)
	require.Len(t, rows, 2)
	assert.InDelta(t, 1.0, rows[0].DrillBlastCostPerTonneBlasted, 1e-12)
	assert.Zero(t, rows[1].DrillBlastCostPerTonneBlasted)
	assert.Equal(t, 0.4, rows[1].LoadFactorKgPerTonne)

	charts := Charts(rows)
	require.Len(t, charts, 6)
	assert.Equal(t, []string{"A", "B"}, charts[0].Names)
	assert.Equal(t, []float64{50, 0}, charts[0].Values)

	assert.Nil(t, Charts(rows[:1]))

	table := TableText(rows)
	assert.Contains(t, table, "Scenario")
	assert.Contains(t, table, "$ 1.00")
}
