package brew

const mlPerGallon = 3785.41

// YeastResult holds the yeast sizing engine output. Counts are in billions
// of cells.
type YeastResult struct {
	CellsNeeded    float64
	CellsAvailable float64
	// Surplus is available minus needed; negative means underpitch.
	Surplus float64
}

// YeastSizing compares the cells required to hit the target pitch rate against
// the cells on hand.
func YeastSizing(y YeastProfile, og, volumeGal float64) YeastResult {
	// Quick Plato approximation: 4 gravity points per degree.
	plato := (og - 1) * 1000 / 4

	// PitchRate is million cells/mL/°Plato, so rate × mL × plato lands in
	// millions of cells; divide by 1000 for billions.
	ml := volumeGal * mlPerGallon
	needed := y.PitchRate * ml * plato / 1000
	if needed < 0 {
		needed = 0
	}

	available := y.UnitCount * y.CellsPerUnit * y.ViabilityPercent / 100

	return YeastResult{
		CellsNeeded:    needed,
		CellsAvailable: available,
		Surplus:        available - needed,
	}
}
