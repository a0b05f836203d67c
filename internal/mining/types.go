package mining

// Inputs holds every scalar parameter of a mining scenario for one period.
type Inputs struct {
	// Targets
	TonnesMinedTarget float64 `json:"tonnesMinedTarget" yaml:"tonnesMinedTarget"`
	StripRatio        float64 `json:"stripRatio" yaml:"stripRatio"`
	PlantFeedTarget   float64 `json:"plantFeedTarget" yaml:"plantFeedTarget"`

	// Drilling and blasting
	TonnesBlastedPeriod         float64 `json:"tonnesBlastedPeriod" yaml:"tonnesBlastedPeriod"`
	LoadFactorKgPerTonne        float64 `json:"loadFactorKgPerTonne" yaml:"loadFactorKgPerTonne"`
	ExplosiveCostUsdPerKg       float64 `json:"explosiveCostUsdPerKg" yaml:"explosiveCostUsdPerKg"`
	DrillAccCostPerTonneBlasted float64 `json:"drillAccCostPerTonneBlasted" yaml:"drillAccCostPerTonneBlasted"`

	// Fleet
	TruckCount          int     `json:"truckCount" yaml:"truckCount"`
	TruckOpHoursPeriod  float64 `json:"truckOpHoursPeriod" yaml:"truckOpHoursPeriod"`
	TruckPayloadTonnes  float64 `json:"truckPayloadTonnes" yaml:"truckPayloadTonnes"`
	AvgCycleTimeMin     float64 `json:"avgCycleTimeMin" yaml:"avgCycleTimeMin"`
	LoaderCount         int     `json:"loaderCount" yaml:"loaderCount"`
	LoaderOpHoursPeriod float64 `json:"loaderOpHoursPeriod" yaml:"loaderOpHoursPeriod"`
	LoaderRateTph       float64 `json:"loaderRateTph" yaml:"loaderRateTph"`

	// Plant
	PlantOpHoursPeriod float64 `json:"plantOpHoursPeriod" yaml:"plantOpHoursPeriod"`
	PlantThroughputTph float64 `json:"plantThroughputTph" yaml:"plantThroughputTph"`

	// Metallurgy and market
	GradePct     float64 `json:"gradePct" yaml:"gradePct"`
	RecoveryPct  float64 `json:"recoveryPct" yaml:"recoveryPct"`
	MetalPrice   float64 `json:"metalPrice" yaml:"metalPrice"`
	ExchangeRate float64 `json:"exchangeRate" yaml:"exchangeRate"`

	// Unit and fixed costs
	CostLoadPerHr    float64 `json:"costLoadPerHr" yaml:"costLoadPerHr"`
	CostHaulPerHr    float64 `json:"costHaulPerHr" yaml:"costHaulPerHr"`
	CostProcessPerHr float64 `json:"costProcessPerHr" yaml:"costProcessPerHr"`
	CostMaintFixed   float64 `json:"costMaintFixed" yaml:"costMaintFixed"`
	CostGaFixed      float64 `json:"costGaFixed" yaml:"costGaFixed"`
}

// Results contains the money figures, unit costs and metal output of a scenario.
type Results struct {
	CostExplosives          float64 `json:"costExplosives"`
	CostDrillAccessories    float64 `json:"costDrillAccessories"`
	CostDrillBlastTotal     float64 `json:"costDrillBlastTotal"`
	CostLoading             float64 `json:"costLoading"`
	CostHauling             float64 `json:"costHauling"`
	CostProcessing          float64 `json:"costProcessing"`
	CostMaintenanceFixed    float64 `json:"costMaintenanceFixed"`
	CostGaFixed             float64 `json:"costGaFixed"`
	TotalOperationalCost    float64 `json:"totalOperationalCost"`
	TotalCost               float64 `json:"totalCost"`
	Revenue                 float64 `json:"revenue"`
	OperatingProfit         float64 `json:"operatingProfit"`
	CostPerTonneMined       float64 `json:"costPerTonneMined"`
	CostPerTonneProcessed   float64 `json:"costPerTonneProcessed"`
	ProfitPerTonneProcessed float64 `json:"profitPerTonneProcessed"`
	MetalProducedUnits      float64 `json:"metalProducedUnits"`
}

// KPIs contains capacity, utilization and productivity figures.
type KPIs struct {
	PotentialTonnesLoaded    float64 `json:"potentialTonnesLoaded"`
	TotalLoaderHoursAvail    float64 `json:"totalLoaderHoursAvail"`
	PotentialTonnesHauled    float64 `json:"potentialTonnesHauled"`
	TotalTruckHoursAvail     float64 `json:"totalTruckHoursAvail"`
	TripsPerTruckHour        float64 `json:"tripsPerTruckHour"`
	PotentialTphPerTruck     float64 `json:"potentialTphPerTruck"`
	PotentialTonnesProcessed float64 `json:"potentialTonnesProcessed"`
	PlantOpHoursPeriod       float64 `json:"plantOpHoursPeriod"`
	TotalExplosiveKg         float64 `json:"totalExplosiveKg"`

	ActualWasteMoved         float64 `json:"actualWasteMoved"`
	ActualTotalMaterialMoved float64 `json:"actualTotalMaterialMoved"`
	ActualTonnesProcessed    float64 `json:"actualTonnesProcessed"`

	ActualLoaderHoursUsed float64 `json:"actualLoaderHoursUsed"`
	ActualTruckHoursUsed  float64 `json:"actualTruckHoursUsed"`
	ActualPlantHoursUsed  float64 `json:"actualPlantHoursUsed"`

	ActualTonnesPerTruckHr  float64 `json:"actualTonnesPerTruckHr"`
	ActualTonnesPerLoaderHr float64 `json:"actualTonnesPerLoaderHr"`
	ActualTphPlant          float64 `json:"actualTphPlant"`
	CostPerTotalTonneMoved  float64 `json:"costPerTotalTonneMoved"`
}

// WarningCode identifies the operational condition behind a Warning.
type WarningCode string

const (
	WarnLoadingCapacity    WarningCode = "loading_capacity_exceeded"
	WarnHaulingCapacity    WarningCode = "hauling_capacity_exceeded"
	WarnProcessingCapacity WarningCode = "processing_capacity_exceeded"
	WarnBlastedMismatch    WarningCode = "blasted_tonnes_mismatch"
	WarnLoaderHours        WarningCode = "loader_hours_exceeded"
	WarnTruckHours         WarningCode = "truck_hours_exceeded"
	WarnPlantHours         WarningCode = "plant_hours_exceeded"
)

// Warning is a non-fatal advisory returned alongside valid results.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

func (w Warning) String() string { return w.Message }

// Report groups the full output of a successful computation.
type Report struct {
	Results  Results   `json:"results"`
	KPIs     KPIs      `json:"kpis"`
	Warnings []Warning `json:"warnings"`
}

// HasWarning reports whether a warning with the given code was raised.
func (r Report) HasWarning(code WarningCode) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
