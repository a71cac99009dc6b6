package brew

// Summary is the full derived view of one recipe context, recomputed from
// scratch on every input change.
type Summary struct {
	OriginalGravity float64
	FinalGravity    float64
	ABV             float64
	IBU             float64
	BUGU            float64
	SRM             float64
	SRMHex          string
	Water           WaterResult
	Yeast           YeastResult
	Keg             KegResult
}

// Summarize runs every engine over the recipe context and collects the
// results. Like the individual engines it never fails; degenerate inputs
// produce zeroed fields.
func Summarize(rc RecipeContext) Summary {
	vol := rc.Equipment.BatchVolumeGal

	g := Gravity(rc.Fermentables, rc.Equipment.EfficiencyPercent, vol)
	fg := EstimateFinalGravity(g.OriginalGravity, rc.MeasuredFG)
	ibu := Bitterness(rc.Hops, g.OriginalGravity, vol)
	srm := Color(rc.Fermentables, vol)

	return Summary{
		OriginalGravity: g.OriginalGravity,
		FinalGravity:    fg,
		ABV:             ABV(g.OriginalGravity, fg),
		IBU:             ibu,
		BUGU:            BUGU(ibu, g.OriginalGravity),
		SRM:             srm,
		SRMHex:          ColorHex(srm),
		Water:           WaterChemistry(rc.SourceWater, rc.Salts, vol),
		Yeast:           YeastSizing(rc.Yeast, g.OriginalGravity, vol),
		Keg:             KegBalance(rc.Keg),
	}
}
