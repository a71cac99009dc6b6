package main

import (
	"fmt"
	"strings"

	"github.com/mrnasser/dewey.beer/internal/brew"
	"github.com/mrnasser/dewey.beer/internal/recipes"
)

// renderRecipeCard renders a saved recipe as a plain-text card. The image
// export tool rasterizes this text downstream; the server only owns the
// content.
func renderRecipeCard(snap recipes.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", snap.Title)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", len(snap.Title)))

	d := snap.Derived
	fmt.Fprintf(&b, "OG %.3f  FG %.3f  ABV %.1f%%\n", d.OriginalGravity, d.FinalGravity, d.ABV)
	fmt.Fprintf(&b, "IBU %.0f  BU:GU %.2f  SRM %.1f\n\n", d.IBU, d.BUGU, d.SRM)

	if len(snap.Context.Fermentables) > 0 {
		b.WriteString("Fermentables:\n")
		for _, f := range snap.Context.Fermentables {
			fmt.Fprintf(&b, "  %-24s %6.2f lb\n", f.Name, f.WeightLb)
		}
		b.WriteString("\n")
	}

	if len(snap.Context.Hops) > 0 {
		b.WriteString("Hops:\n")
		for _, h := range snap.Context.Hops {
			switch h.Use {
			case brew.HopDry:
				fmt.Fprintf(&b, "  %-24s %5.2f oz  dry hop\n", h.Name, h.WeightOz)
			case brew.HopWhirlpool:
				fmt.Fprintf(&b, "  %-24s %5.2f oz  whirlpool\n", h.Name, h.WeightOz)
			default:
				fmt.Fprintf(&b, "  %-24s %5.2f oz  @ %.0f min\n", h.Name, h.WeightOz, h.TimeMinutes)
			}
		}
		b.WriteString("\n")
	}

	y := d.Yeast
	if y.CellsNeeded > 0 || y.CellsAvailable > 0 {
		fmt.Fprintf(&b, "Yeast: need %.0fB, have %.0fB", y.CellsNeeded, y.CellsAvailable)
		if y.Surplus < 0 {
			fmt.Fprintf(&b, " (short %.0fB)", -y.Surplus)
		}
		b.WriteString("\n")
	}

	if d.Keg.ServingPSI > 0 {
		fmt.Fprintf(&b, "Serve at %.1f PSI on %.1f ft of line\n", d.Keg.ServingPSI, d.Keg.LineLengthFt)
	}

	if snap.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", snap.Notes)
	}

	return b.String()
}
