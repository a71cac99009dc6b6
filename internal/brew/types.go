// Package brew implements the pure brewing math engines behind the recipe
// calculator: gravity, bitterness, color, water chemistry, yeast sizing,
// keg balance, and fermentation scheduling. Every function is stateless and
// total; degenerate inputs (zero or negative volumes, empty bills) degrade to
// documented sentinel outputs instead of returning errors, because callers
// recompute on every input change.
package brew

// Fermentable is one line of the grain bill.
type Fermentable struct {
	Name string
	// WeightLb is the fermentable weight in pounds.
	WeightLb float64
	// PotentialPPG is the extract potential in gravity points per pound per gallon.
	PotentialPPG float64
	// ColorLovibond is the malt color in degrees Lovibond.
	ColorLovibond float64
}

// HopUse distinguishes how a hop addition is applied.
type HopUse string

const (
	HopBoil      HopUse = "boil"
	HopWhirlpool HopUse = "whirlpool"
	HopDry       HopUse = "dry-hop"
)

// HopAddition is one line of the hop schedule.
type HopAddition struct {
	Name string
	// WeightOz is the addition weight in ounces.
	WeightOz float64
	// AlphaAcid is the alpha-acid percentage (0-100).
	AlphaAcid float64
	// TimeMinutes is the boil time in minutes. Ignored for whirlpool
	// additions, which use a fixed equivalent time.
	TimeMinutes float64
	Use         HopUse
	// WhirlpoolTempF is the whirlpool temperature in °F. Zero means
	// unspecified; the bitterness engine assumes 200 °F.
	WhirlpoolTempF float64
}

// EquipmentProfile describes the brewhouse used for volume bookkeeping.
type EquipmentProfile struct {
	BatchVolumeGal     float64
	EfficiencyPercent  float64
	GrainAbsorptionGPL float64 // gallons absorbed per pound of grain
	BoilOffGPH         float64 // gallons boiled off per hour
	TrubLossGal        float64
	DeadspaceGal       float64
}

// WaterIonProfile holds the six tracked ion concentrations in ppm.
type WaterIonProfile struct {
	Calcium     float64
	Magnesium   float64
	Sodium      float64
	Chloride    float64
	Sulfate     float64
	Bicarbonate float64
}

// SaltAdditions holds brewing salt masses in grams.
type SaltAdditions struct {
	Gypsum          float64
	CalciumChloride float64
	EpsomSalt       float64
	TableSalt       float64
	BakingSoda      float64
	Chalk           float64
}

// YeastForm is the physical form of a yeast product.
type YeastForm string

const (
	YeastLiquid YeastForm = "liquid"
	YeastDry    YeastForm = "dry"
)

// YeastProfile describes the yeast product being pitched.
type YeastProfile struct {
	Category string // ale, lager, hybrid
	Form     YeastForm
	// CellsPerUnit is the advertised cell count per pack or vial, in billions.
	CellsPerUnit float64
	UnitCount    float64
	// ViabilityPercent is the estimated remaining viability (0-100).
	ViabilityPercent float64
	// PitchRate is the target pitch rate in million cells / mL / °Plato.
	PitchRate float64
}

// FermentationStep is one stage of a brewing fermentation schedule.
type FermentationStep struct {
	Name         string
	TempF        float64
	DurationDays float64
}

// KegConfig describes a draft serving setup.
type KegConfig struct {
	ServingTempF  float64
	CO2Volumes    float64
	LineResistPSI float64 // pressure drop per foot of line
	RiseFt        float64 // vertical rise from keg to faucet
}

// RecipeContext aggregates one calculation session's inputs. It has no
// lifecycle of its own; persistence belongs to the storage layer.
type RecipeContext struct {
	Name         string
	Fermentables []Fermentable
	Hops         []HopAddition
	Equipment    EquipmentProfile
	SourceWater  WaterIonProfile
	Salts        SaltAdditions
	Yeast        YeastProfile
	Schedule     []FermentationStep
	Keg          KegConfig
	// MeasuredFG is the measured final gravity, or 0 when not measured.
	MeasuredFG float64
}
