// Package dough implements the baker's-math side of the dashboard: pan
// geometry to ingredient masses, the auto-hydration rule, and the backward
// fermentation timeline. Engines here follow the same contract as the brew
// package: pure, never erroring, degenerate inputs fall back to zeros.
package dough

import "math"

const gramsPerOunce = 28.3495

// Percentages are the baker's percentages of a formulation, each expressed
// as a percent of flour mass (flour itself is the implicit 100).
type Percentages struct {
	Hydration float64
	Salt      float64
	Oil       float64
	Sugar     float64
	Yeast     float64
}

// Input describes one formulation request.
type Input struct {
	PanDiameterIn float64
	PanCount      int
	// ThicknessFactor is dough weight per pan area in oz/in².
	ThicknessFactor float64
	Percent         Percentages
}

// Masses holds the absolute ingredient masses in grams.
type Masses struct {
	Flour float64
	Water float64
	Salt  float64
	Oil   float64
	Sugar float64
	Yeast float64
}

// Result is the formulation engine output.
type Result struct {
	// SingleDoughG is the dough mass for one pan, in grams.
	SingleDoughG float64
	// TotalDoughG is the dough mass across all pans, in grams.
	TotalDoughG float64
	Masses      Masses
}

// Formulate converts pan geometry plus baker's percentages into absolute
// ingredient masses. Masses are rounded to the nearest gram except yeast,
// which keeps one decimal because the quantities are tiny. This transform is
// one-way: feeding masses back in place of percentages has no defined inverse.
func Formulate(in Input) Result {
	radius := in.PanDiameterIn / 2
	area := math.Pi * radius * radius

	singleOz := area * in.ThicknessFactor
	singleG := singleOz * gramsPerOunce
	totalG := singleG * float64(in.PanCount)

	totalPercent := 100 + in.Percent.Hydration + in.Percent.Salt + in.Percent.Oil + in.Percent.Sugar + in.Percent.Yeast
	if totalPercent <= 0 {
		return Result{SingleDoughG: singleG, TotalDoughG: totalG}
	}

	flour := totalG / (totalPercent / 100)

	return Result{
		SingleDoughG: singleG,
		TotalDoughG:  totalG,
		Masses: Masses{
			Flour: math.Round(flour),
			Water: math.Round(flour * in.Percent.Hydration / 100),
			Salt:  math.Round(flour * in.Percent.Salt / 100),
			Oil:   math.Round(flour * in.Percent.Oil / 100),
			Sugar: math.Round(flour * in.Percent.Sugar / 100),
			Yeast: math.Round(flour*in.Percent.Yeast/100*10) / 10,
		},
	}
}

// AutoHydration derives a hydration percentage from the chosen fermentation
// durations: longer cold or room ferments earn wetter dough. The result is
// clamped into the style's hydration range and rounded to one decimal.
// Callers in manual-hydration mode must not call this; the user's explicit
// value is authoritative.
func AutoHydration(style StyleProfile, roomHours, coldHours float64) float64 {
	h := style.Hydration.Default

	if excess := coldHours - style.ColdHours.Min; excess > 0 {
		h += excess / 12 * 0.5
	}
	if excess := roomHours - style.RoomHours.Min; excess > 0 {
		h += excess * 0.25
	}

	if h < style.Hydration.Min {
		h = style.Hydration.Min
	}
	if h > style.Hydration.Max {
		h = style.Hydration.Max
	}

	return math.Round(h*10) / 10
}
