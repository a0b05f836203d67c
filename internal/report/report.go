// Package report formats engine output and saved scenarios for display.
package report

import (
	"fmt"
	"strings"

	"github.com/Simplici0/minecalc/internal/mining"
	"github.com/Simplici0/minecalc/internal/scenario"
)

// Slice is one positive component of the operating cost breakdown.
type Slice struct {
	Component string  `json:"component"`
	Value     float64 `json:"value"`
}

// CostBreakdown returns the variable operating costs, omitting zero ones.
func CostBreakdown(r mining.Results) []Slice {
	all := []Slice{
		{"Drilling & accessories", r.CostDrillAccessories},
		{"Explosives", r.CostExplosives},
		{"Loading", r.CostLoading},
		{"Hauling", r.CostHauling},
		{"Processing", r.CostProcessing},
	}
	out := make([]Slice, 0, len(all))
	for _, s := range all {
		if s.Value > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Measure tells how a waterfall step combines with the running total.
type Measure string

const (
	MeasureAbsolute Measure = "absolute"
	MeasureRelative Measure = "relative"
	MeasureTotal    Measure = "total"
)

// Step is one bar of the revenue-to-profit waterfall.
type Step struct {
	Label   string  `json:"label"`
	Measure Measure `json:"measure"`
	Value   float64 `json:"value"`
}

// Waterfall walks from revenue down to operating profit.
func Waterfall(r mining.Results) []Step {
	return []Step{
		{"Revenue", MeasureAbsolute, r.Revenue},
		{"Operating cost", MeasureRelative, -abs(r.TotalOperationalCost)},
		{"Fixed costs (maintenance, G&A)", MeasureRelative, -abs(r.CostMaintenanceFixed + r.CostGaFixed)},
		{"Operating profit", MeasureTotal, r.OperatingProfit},
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Text renders a plain-text report of one computed scenario. Warnings are
// listed after the figures.
func Text(in mining.Inputs, rep mining.Report) string {
	r, k := rep.Results, rep.KPIs
	var b strings.Builder

	fmt.Fprintln(&b, "Financial results:")
	fmt.Fprintf(&b, "  Revenue: %s\n", Money(r.Revenue, 0))
	fmt.Fprintf(&b, "  Total cost: %s\n", Money(r.TotalCost, 0))
	fmt.Fprintf(&b, "  Operating profit: %s\n", Money(r.OperatingProfit, 0))
	fmt.Fprintf(&b, "  Cost / t processed: %s\n", Money(r.CostPerTonneProcessed, 2))
	fmt.Fprintf(&b, "  Profit / t processed: %s\n", Money(r.ProfitPerTonneProcessed, 2))
	fmt.Fprintf(&b, "  Cost / t mined: %s\n", Money(r.CostPerTonneMined, 2))
	fmt.Fprintf(&b, "  Metal sold (units): %s\n", Number(r.MetalProducedUnits, 1))

	fmt.Fprintln(&b, "\nCosts by area:")
	fmt.Fprintf(&b, "  Explosives: %s (%s kg)\n", Money(r.CostExplosives, 0), Number(k.TotalExplosiveKg, 0))
	fmt.Fprintf(&b, "  Drilling & accessories: %s\n", Money(r.CostDrillAccessories, 0))
	fmt.Fprintf(&b, "  Drilling & blasting total: %s\n", Money(r.CostDrillBlastTotal, 0))
	fmt.Fprintf(&b, "  Loading: %s\n", Money(r.CostLoading, 0))
	fmt.Fprintf(&b, "  Hauling: %s\n", Money(r.CostHauling, 0))
	fmt.Fprintf(&b, "  Processing: %s\n", Money(r.CostProcessing, 0))
	fmt.Fprintf(&b, "  Maintenance (fixed): %s\n", Money(r.CostMaintenanceFixed, 0))
	fmt.Fprintf(&b, "  G&A (fixed): %s\n", Money(r.CostGaFixed, 0))
	fmt.Fprintf(&b, "  Operating cost: %s\n", Money(r.TotalOperationalCost, 0))

	fmt.Fprintln(&b, "\nOperating KPIs:")
	fmt.Fprintf(&b, "  Material moved: %s t (waste %s t)\n", Number(k.ActualTotalMaterialMoved, 0), Number(k.ActualWasteMoved, 0))
	fmt.Fprintf(&b, "  Tonnes moved / truck h: %s t/h\n", Number(k.ActualTonnesPerTruckHr, 1))
	fmt.Fprintf(&b, "  Tonnes moved / loader h: %s t/h\n", Number(k.ActualTonnesPerLoaderHr, 1))
	fmt.Fprintf(&b, "  Plant throughput: %s t/h\n", Number(k.ActualTphPlant, 1))
	fmt.Fprintf(&b, "  Cost / total t moved: %s\n", Money(k.CostPerTotalTonneMoved, 2))
	fmt.Fprintf(&b, "  Loader hours: %s of %s\n", Number(k.ActualLoaderHoursUsed, 1), Number(k.TotalLoaderHoursAvail, 0))
	fmt.Fprintf(&b, "  Truck hours: %s of %s\n", Number(k.ActualTruckHoursUsed, 1), Number(k.TotalTruckHoursAvail, 0))
	fmt.Fprintf(&b, "  Plant hours: %s of %s\n", Number(k.ActualPlantHoursUsed, 1), Number(k.PlantOpHoursPeriod, 0))

	fmt.Fprintln(&b, "\nAssumptions:")
	fmt.Fprintf(&b, "  Ore target: %s t, strip ratio %s, plant feed %s t\n", Number(in.TonnesMinedTarget, 0), Number(in.StripRatio, 2), Number(in.PlantFeedTarget, 0))
	fmt.Fprintf(&b, "  Grade %s%%, recovery %s%%, price %s, exchange rate %s\n", Number(in.GradePct, 2), Number(in.RecoveryPct, 1), Money(in.MetalPrice, 2), Number(in.ExchangeRate, 2))

	if len(rep.Warnings) > 0 {
		fmt.Fprintln(&b, "\nWarnings:")
		for _, w := range rep.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w.Message)
		}
	}
	return b.String()
}

// Errors renders engine errors, one per line.
func Errors(err error) string {
	var b strings.Builder
	fmt.Fprintln(&b, "Errors:")
	for _, msg := range mining.Messages(err) {
		fmt.Fprintf(&b, "  - %s\n", msg)
	}
	return b.String()
}

// Row is one line of the saved scenario comparison table.
type Row struct {
	Name                          string  `json:"name"`
	OperatingProfit               float64 `json:"operatingProfit"`
	CostPerTonneProcessed         float64 `json:"costPerTonneProcessed"`
	DrillBlastCostPerTonneBlasted float64 `json:"drillBlastCostPerTonneBlasted"`
	LoadFactorKgPerTonne          float64 `json:"loadFactorKgPerTonne"`
	TonnesPerTruckHr              float64 `json:"tonnesPerTruckHr"`
	TphPlant                      float64 `json:"tphPlant"`
	MetalPrice                    float64 `json:"metalPrice"`
}

// Compare builds the comparison table in saved order.
func Compare(saved []scenario.Saved) []Row {
	rows := make([]Row, 0, len(saved))
	for _, s := range saved {
		drillBlast := s.Outputs.CostExplosives + s.Outputs.CostDrillAccessories
		perBlasted := 0.0
		if s.Inputs.TonnesBlastedPeriod != 0 {
			perBlasted = drillBlast / s.Inputs.TonnesBlastedPeriod
		}
		rows = append(rows, Row{
			Name:                          s.Name,
			OperatingProfit:               s.Outputs.OperatingProfit,
			CostPerTonneProcessed:         s.Outputs.CostPerTonneProcessed,
			DrillBlastCostPerTonneBlasted: perBlasted,
			LoadFactorKgPerTonne:          s.Inputs.LoadFactorKgPerTonne,
			TonnesPerTruckHr:              s.Outputs.ActualTonnesPerTruckHr,
			TphPlant:                      s.Outputs.ActualTphPlant,
			MetalPrice:                    s.Inputs.MetalPrice,
		})
	}
	return rows
}

// Series is one comparison bar chart: a value per scenario name.
type Series struct {
	Title  string    `json:"title"`
	Names  []string  `json:"names"`
	Values []float64 `json:"values"`
}

// Charts returns the comparison bar charts. They are only meaningful with
// at least two scenarios, so fewer rows yield nil.
func Charts(rows []Row) []Series {
	if len(rows) < 2 {
		return nil
	}
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Name
	}
	series := func(title string, pick func(Row) float64) Series {
		values := make([]float64, len(rows))
		for i, r := range rows {
			values[i] = pick(r)
		}
		return Series{Title: title, Names: names, Values: values}
	}
	return []Series{
		series("Operating profit", func(r Row) float64 { return r.OperatingProfit }),
		series("Cost / t processed", func(r Row) float64 { return r.CostPerTonneProcessed }),
		series("Drilling & blasting cost / t blasted", func(r Row) float64 { return r.DrillBlastCostPerTonneBlasted }),
		series("Load factor (kg/t)", func(r Row) float64 { return r.LoadFactorKgPerTonne }),
		series("Truck productivity (t/h)", func(r Row) float64 { return r.TonnesPerTruckHr }),
		series("Plant productivity (t/h)", func(r Row) float64 { return r.TphPlant }),
	}
}

// TableText renders the comparison rows as aligned plain text.
func TableText(rows []Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-24s %16s %14s %14s %10s %12s %12s %10s\n",
		"Scenario", "Profit", "Cost/t proc", "D&B/t blasted", "LF kg/t", "t/h truck", "t/h plant", "Price")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-24s %16s %14s %14s %10s %12s %12s %10s\n",
			r.Name,
			Money(r.OperatingProfit, 0),
			Money(r.CostPerTonneProcessed, 2),
			Money(r.DrillBlastCostPerTonneBlasted, 2),
			Number(r.LoadFactorKgPerTonne, 2),
			Number(r.TonnesPerTruckHr, 1),
			Number(r.TphPlant, 1),
			Money(r.MetalPrice, 2),
		)
	}
	return b.String()
}
