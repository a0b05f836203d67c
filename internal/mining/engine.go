package mining

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/dustin/go-humanize"
)

const (
	closeRelTol = 1e-5
	closeAbsTol = 1e-8
)

// Compute validates the inputs and derives the results, KPIs and warnings of
// a scenario. It returns ValidationErrors listing every violated precondition,
// or a *ComputationFault when the arithmetic cannot be completed; in both
// cases the Report is empty.
func Compute(in Inputs) (rep Report, err error) {
	if verrs := Validate(in); len(verrs) > 0 {
		return Report{}, verrs
	}

	defer func() {
		if r := recover(); r != nil {
			rep = Report{}
			err = &ComputationFault{Cause: fmt.Sprint(r)}
		}
	}()

	rep, err = compute(in)
	if err != nil {
		return Report{}, err
	}
	if field, ok := firstNonFinite(rep); !ok {
		return Report{}, &ComputationFault{Cause: fmt.Sprintf("%s is not a finite number", field)}
	}
	return rep, nil
}

// Validate runs every input check and returns all violations found.
func Validate(in Inputs) ValidationErrors {
	var verrs ValidationErrors
	check := func(ok bool, field, msg string) {
		if !ok {
			verrs = append(verrs, FieldError{Field: field, Message: msg})
		}
	}

	check(in.TonnesBlastedPeriod > 0, "tonnesBlastedPeriod", "tonnes blasted must be > 0")
	check(in.LoadFactorKgPerTonne > 0, "loadFactorKgPerTonne", "explosive load factor must be > 0")
	check(in.ExplosiveCostUsdPerKg >= 0, "explosiveCostUsdPerKg", "explosive cost cannot be negative")
	check(in.DrillAccCostPerTonneBlasted >= 0, "drillAccCostPerTonneBlasted", "drilling & accessories cost cannot be negative")
	check(in.TonnesMinedTarget > 0, "tonnesMinedTarget", "target tonnes mined must be > 0")
	check(in.StripRatio >= 0, "stripRatio", "strip ratio cannot be negative")
	check(in.PlantFeedTarget > 0, "plantFeedTarget", "target plant feed must be > 0")
	check(in.AvgCycleTimeMin > 0, "avgCycleTimeMin", "truck cycle time must be > 0")

	return verrs
}

// hours is the time needed to move a demand at a rate. Unbounded marks a
// zero or negative rate: no finite number of hours can serve the demand.
type hours struct {
	value     float64
	unbounded bool
}

func requiredHours(demand, rate float64) hours {
	if rate <= 0 {
		return hours{unbounded: true}
	}
	return hours{value: demand / rate}
}

// capAt returns the hours actually worked and whether the requirement
// exceeded what was available.
func (h hours) capAt(available float64) (float64, bool) {
	if h.unbounded {
		return available, true
	}
	if h.value > available {
		return available, true
	}
	return h.value, false
}

func compute(in Inputs) (Report, error) {
	var (
		res      Results
		kpi      KPIs
		warnings []Warning
	)
	warn := func(code WarningCode, format string, args ...any) {
		warnings = append(warnings, Warning{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	// Capacity potentials.
	kpi.TotalLoaderHoursAvail = float64(in.LoaderCount) * in.LoaderOpHoursPeriod
	kpi.PotentialTonnesLoaded = kpi.TotalLoaderHoursAvail * in.LoaderRateTph

	kpi.TotalTruckHoursAvail = float64(in.TruckCount) * in.TruckOpHoursPeriod
	kpi.TripsPerTruckHour = 60.0 / in.AvgCycleTimeMin
	kpi.PotentialTphPerTruck = kpi.TripsPerTruckHour * in.TruckPayloadTonnes
	kpi.PotentialTonnesHauled = kpi.TotalTruckHoursAvail * kpi.PotentialTphPerTruck

	kpi.PlantOpHoursPeriod = in.PlantOpHoursPeriod
	kpi.PotentialTonnesProcessed = in.PlantOpHoursPeriod * in.PlantThroughputTph

	// Realized tonnages are the targets, never clamped to capacity.
	kpi.ActualWasteMoved = in.TonnesMinedTarget * in.StripRatio
	kpi.ActualTotalMaterialMoved = in.TonnesMinedTarget + kpi.ActualWasteMoved
	kpi.ActualTonnesProcessed = in.PlantFeedTarget
	moved := kpi.ActualTotalMaterialMoved
	processed := kpi.ActualTonnesProcessed

	if moved > kpi.PotentialTonnesLoaded {
		warn(WarnLoadingCapacity, "moved (%st) exceeds loading capacity (%st)", tonnes(moved), tonnes(kpi.PotentialTonnesLoaded))
	}
	if moved > kpi.PotentialTonnesHauled {
		warn(WarnHaulingCapacity, "moved (%st) exceeds hauling capacity (%st)", tonnes(moved), tonnes(kpi.PotentialTonnesHauled))
	}
	if processed > kpi.PotentialTonnesProcessed {
		warn(WarnProcessingCapacity, "processed (%st) exceeds processing capacity (%st)", tonnes(processed), tonnes(kpi.PotentialTonnesProcessed))
	}
	// Blasted and moved tonnes may differ through stockpile changes.
	if !isClose(in.TonnesBlastedPeriod, moved) {
		warn(WarnBlastedMismatch, "tonnes blasted (%st) differ from target material moved (%st)", tonnes(in.TonnesBlastedPeriod), tonnes(moved))
	}

	// Drilling and blasting is driven by blasted tonnes, not moved tonnes.
	kpi.TotalExplosiveKg = in.TonnesBlastedPeriod * in.LoadFactorKgPerTonne
	res.CostExplosives = kpi.TotalExplosiveKg * in.ExplosiveCostUsdPerKg
	res.CostDrillAccessories = in.TonnesBlastedPeriod * in.DrillAccCostPerTonneBlasted
	res.CostDrillBlastTotal = res.CostExplosives + res.CostDrillAccessories

	var over bool

	loaderHours := requiredHours(moved, in.LoaderRateTph*float64(in.LoaderCount))
	kpi.ActualLoaderHoursUsed, over = loaderHours.capAt(kpi.TotalLoaderHoursAvail)
	if over {
		warn(WarnLoaderHours, "required loader hours exceed available (%s h)", tonnes(kpi.TotalLoaderHoursAvail))
	}
	res.CostLoading = kpi.ActualLoaderHoursUsed * in.CostLoadPerHr

	truckHours := requiredHours(moved, kpi.PotentialTphPerTruck*float64(in.TruckCount))
	kpi.ActualTruckHoursUsed, over = truckHours.capAt(kpi.TotalTruckHoursAvail)
	if over {
		warn(WarnTruckHours, "required truck hours exceed available (%s h)", tonnes(kpi.TotalTruckHoursAvail))
	}
	res.CostHauling = kpi.ActualTruckHoursUsed * in.CostHaulPerHr

	plantHours := requiredHours(processed, in.PlantThroughputTph)
	kpi.ActualPlantHoursUsed, over = plantHours.capAt(in.PlantOpHoursPeriod)
	if over {
		warn(WarnPlantHours, "required plant hours exceed available (%s h)", tonnes(in.PlantOpHoursPeriod))
	}
	res.CostProcessing = kpi.ActualPlantHoursUsed * in.CostProcessPerHr

	res.CostMaintenanceFixed = in.CostMaintFixed
	res.CostGaFixed = in.CostGaFixed
	res.TotalOperationalCost = res.CostDrillBlastTotal + res.CostLoading + res.CostHauling + res.CostProcessing
	res.TotalCost = res.TotalOperationalCost + res.CostMaintenanceFixed + res.CostGaFixed

	res.CostPerTonneMined = safeDiv(res.TotalCost, in.TonnesMinedTarget)
	res.CostPerTonneProcessed = safeDiv(res.TotalCost, processed)
	kpi.CostPerTotalTonneMoved = safeDiv(res.TotalCost, moved)

	if in.ExchangeRate == 0 {
		return Report{}, &ComputationFault{Cause: "division by zero: exchangeRate"}
	}
	res.MetalProducedUnits = processed * (in.GradePct / 100.0) * (in.RecoveryPct / 100.0)
	res.Revenue = res.MetalProducedUnits * in.MetalPrice / in.ExchangeRate
	res.OperatingProfit = res.Revenue - res.TotalCost
	res.ProfitPerTonneProcessed = safeDiv(res.OperatingProfit, processed)

	kpi.ActualTonnesPerTruckHr = positiveDiv(moved, kpi.ActualTruckHoursUsed)
	kpi.ActualTonnesPerLoaderHr = positiveDiv(moved, kpi.ActualLoaderHoursUsed)
	kpi.ActualTphPlant = positiveDiv(processed, kpi.ActualPlantHoursUsed)

	return Report{Results: res, KPIs: kpi, Warnings: warnings}, nil
}

// safeDiv returns 0 when the divisor is zero.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// positiveDiv returns 0 unless the divisor is strictly positive.
func positiveDiv(num, den float64) float64 {
	if den > 0 {
		return num / den
	}
	return 0
}

func isClose(a, b float64) bool {
	return math.Abs(a-b) <= closeAbsTol+closeRelTol*math.Abs(b)
}

// tonnes formats v rounded to whole units with thousands separators. The
// digits go through big.Int so values beyond int64 stay exact.
func tonnes(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	i, _ := big.NewFloat(math.Round(v)).Int(nil)
	return humanize.BigComma(i)
}

func firstNonFinite(rep Report) (string, bool) {
	r, k := rep.Results, rep.KPIs
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"totalCost", r.TotalCost},
		{"revenue", r.Revenue},
		{"operatingProfit", r.OperatingProfit},
		{"costPerTonneMined", r.CostPerTonneMined},
		{"costPerTonneProcessed", r.CostPerTonneProcessed},
		{"profitPerTonneProcessed", r.ProfitPerTonneProcessed},
		{"metalProducedUnits", r.MetalProducedUnits},
		{"potentialTonnesLoaded", k.PotentialTonnesLoaded},
		{"potentialTonnesHauled", k.PotentialTonnesHauled},
		{"potentialTonnesProcessed", k.PotentialTonnesProcessed},
		{"actualTonnesPerTruckHr", k.ActualTonnesPerTruckHr},
		{"actualTonnesPerLoaderHr", k.ActualTonnesPerLoaderHr},
		{"actualTphPlant", k.ActualTphPlant},
		{"costPerTotalTonneMoved", k.CostPerTotalTonneMoved},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return f.name, false
		}
	}
	return "", true
}
