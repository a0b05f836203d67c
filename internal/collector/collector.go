// Package collector turns raw form values and scenario files into engine
// inputs, enforcing the numeric bounds of each field.
package collector

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Simplici0/minecalc/internal/mining"
	"github.com/Simplici0/minecalc/internal/seed"
)

// maxCount bounds whole-number fields so they convert to int exactly.
const maxCount = math.MaxInt32

// Field describes one input of the scenario form.
type Field struct {
	Name  string
	Label string
	Group string
	Min   float64
	Max   float64 // zero means no upper bound
	Step  float64
	Int   bool

	floatPtr func(*mining.Inputs) *float64
	intPtr   func(*mining.Inputs) *int
}

// Value returns the field's current value in in.
func (f Field) Value(in mining.Inputs) float64 {
	if f.Int {
		return float64(*f.intPtr(&in))
	}
	return *f.floatPtr(&in)
}

func (f Field) set(in *mining.Inputs, v float64) {
	if f.Int {
		*f.intPtr(in) = int(v)
		return
	}
	*f.floatPtr(in) = v
}

func num(name, label, group string, min, max, step float64, p func(*mining.Inputs) *float64) Field {
	return Field{Name: name, Label: label, Group: group, Min: min, Max: max, Step: step, floatPtr: p}
}

func count(name, label, group string, min float64, p func(*mining.Inputs) *int) Field {
	return Field{Name: name, Label: label, Group: group, Min: min, Step: 1, Int: true, intPtr: p}
}

const (
	groupTargets = "Operating targets"
	groupBlast   = "Drilling & blasting"
	groupFleet   = "Loading & hauling fleet"
	groupPlant   = "Processing plant"
	groupMarket  = "Metallurgy & market"
	groupCosts   = "Unit & fixed costs"
)

var fields = []Field{
	num("tonnesMinedTarget", "Target tonnes mined (ore)", groupTargets, 0, 0, 10000, func(in *mining.Inputs) *float64 { return &in.TonnesMinedTarget }),
	num("stripRatio", "Strip ratio (waste/ore)", groupTargets, 0, 0, 0.1, func(in *mining.Inputs) *float64 { return &in.StripRatio }),
	num("plantFeedTarget", "Target plant feed (ore)", groupTargets, 0, 0, 10000, func(in *mining.Inputs) *float64 { return &in.PlantFeedTarget }),

	num("tonnesBlastedPeriod", "Tonnes blasted / period", groupBlast, 0, 0, 10000, func(in *mining.Inputs) *float64 { return &in.TonnesBlastedPeriod }),
	num("loadFactorKgPerTonne", "Explosive load factor (kg/t blasted)", groupBlast, 0, 0, 0.01, func(in *mining.Inputs) *float64 { return &in.LoadFactorKgPerTonne }),
	num("explosiveCostUsdPerKg", "Explosive cost ($/kg)", groupBlast, 0, 0, 0.05, func(in *mining.Inputs) *float64 { return &in.ExplosiveCostUsdPerKg }),
	num("drillAccCostPerTonneBlasted", "Drilling & accessories cost ($/t blasted)", groupBlast, 0, 0, 0.05, func(in *mining.Inputs) *float64 { return &in.DrillAccCostPerTonneBlasted }),

	count("truckCount", "Operating trucks", groupFleet, 1, func(in *mining.Inputs) *int { return &in.TruckCount }),
	num("truckOpHoursPeriod", "Truck operating hours / period", groupFleet, 0, 0, 100, func(in *mining.Inputs) *float64 { return &in.TruckOpHoursPeriod }),
	num("truckPayloadTonnes", "Truck payload (t)", groupFleet, 1, 0, 5, func(in *mining.Inputs) *float64 { return &in.TruckPayloadTonnes }),
	num("avgCycleTimeMin", "Average truck cycle time (min)", groupFleet, 1, 0, 0.5, func(in *mining.Inputs) *float64 { return &in.AvgCycleTimeMin }),
	count("loaderCount", "Operating loaders", groupFleet, 1, func(in *mining.Inputs) *int { return &in.LoaderCount }),
	num("loaderOpHoursPeriod", "Loader operating hours / period", groupFleet, 0, 0, 50, func(in *mining.Inputs) *float64 { return &in.LoaderOpHoursPeriod }),
	num("loaderRateTph", "Loading rate (t/h per loader)", groupFleet, 1, 0, 10, func(in *mining.Inputs) *float64 { return &in.LoaderRateTph }),

	num("plantOpHoursPeriod", "Plant operating hours / period", groupPlant, 0, 0, 10, func(in *mining.Inputs) *float64 { return &in.PlantOpHoursPeriod }),
	num("plantThroughputTph", "Plant throughput (t/h)", groupPlant, 1, 0, 5, func(in *mining.Inputs) *float64 { return &in.PlantThroughputTph }),

	num("gradePct", "Head grade (%)", groupMarket, 0, 100, 0.01, func(in *mining.Inputs) *float64 { return &in.GradePct }),
	num("recoveryPct", "Metallurgical recovery (%)", groupMarket, 0, 100, 0.1, func(in *mining.Inputs) *float64 { return &in.RecoveryPct }),
	num("metalPrice", "Metal price ($/unit)", groupMarket, 0, 0, 0.05, func(in *mining.Inputs) *float64 { return &in.MetalPrice }),
	num("exchangeRate", "Exchange rate (local/USD)", groupMarket, 0.01, 0, 0.01, func(in *mining.Inputs) *float64 { return &in.ExchangeRate }),

	num("costLoadPerHr", "Loading cost ($/loader h)", groupCosts, 0, 0, 5, func(in *mining.Inputs) *float64 { return &in.CostLoadPerHr }),
	num("costHaulPerHr", "Hauling cost ($/truck h)", groupCosts, 0, 0, 5, func(in *mining.Inputs) *float64 { return &in.CostHaulPerHr }),
	num("costProcessPerHr", "Processing cost ($/plant h)", groupCosts, 0, 0, 100, func(in *mining.Inputs) *float64 { return &in.CostProcessPerHr }),
	num("costMaintFixed", "Fixed maintenance cost ($/period)", groupCosts, 0, 0, 10000, func(in *mining.Inputs) *float64 { return &in.CostMaintFixed }),
	num("costGaFixed", "Fixed G&A cost ($/period)", groupCosts, 0, 0, 10000, func(in *mining.Inputs) *float64 { return &in.CostGaFixed }),
}

// Fields returns the form fields in display order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FromForm overlays the submitted values onto base. Missing fields keep
// their base value; the first malformed or out-of-range field is reported.
func FromForm(values url.Values, base mining.Inputs) (mining.Inputs, error) {
	in := base
	for _, f := range fields {
		raw := strings.TrimSpace(values.Get(f.Name))
		if raw == "" {
			continue
		}
		v, err := parseField(f, raw)
		if err != nil {
			return in, err
		}
		f.set(&in, v)
	}
	return in, nil
}

// CheckBounds verifies every field of in against its bounds.
func CheckBounds(in mining.Inputs) error {
	for _, f := range fields {
		if err := checkField(f, f.Value(in)); err != nil {
			return err
		}
	}
	return nil
}

// LoadYAML decodes a scenario file over the default inputs and checks bounds.
// Unknown keys are rejected; an empty document yields the defaults.
func LoadYAML(r io.Reader) (mining.Inputs, error) {
	in := seed.DefaultInputs()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return mining.Inputs{}, fmt.Errorf("decode scenario yaml: %w", err)
	}

	if err := CheckBounds(in); err != nil {
		return mining.Inputs{}, err
	}
	return in, nil
}

func parseField(f Field, raw string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric", f.Name)
	}
	if err := checkField(f, value); err != nil {
		return 0, err
	}
	return value, nil
}

func checkField(f Field, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be a finite number", f.Name)
	}
	if f.Int && value != math.Trunc(value) {
		return fmt.Errorf("%s must be a whole number", f.Name)
	}
	if f.Int && value > maxCount {
		return fmt.Errorf("%s must be less than or equal to %d", f.Name, maxCount)
	}
	if f.Max > 0 && (value < f.Min || value > f.Max) {
		return fmt.Errorf("%s must be between %g and %g", f.Name, f.Min, f.Max)
	}
	if value < f.Min {
		return fmt.Errorf("%s must be greater than or equal to %g", f.Name, f.Min)
	}
	return nil
}
