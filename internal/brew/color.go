package brew

import "math"

// Color computes the beer color (SRM) from the grain bill using the Morey
// equation. A volume of zero or less yields 0.
func Color(bill []Fermentable, volumeGal float64) float64 {
	if volumeGal <= 0 {
		return 0
	}

	var mcu float64
	for _, f := range bill {
		mcu += f.WeightLb * f.ColorLovibond
	}
	mcu /= volumeGal

	if mcu <= 0 {
		return 0
	}
	return 1.4922 * math.Pow(mcu, 0.6859)
}

// srmBand pairs an upper SRM bound with its display swatch. Bands must stay
// sorted ascending: ColorHex walks them in order and the first match wins,
// so boundary values land in the lighter band.
type srmBand struct {
	maxSRM float64
	hex    string
}

var srmBands = []srmBand{
	{2, "#F8F753"},
	{3, "#F6F513"},
	{4, "#ECE61A"},
	{6, "#D5BC26"},
	{9, "#BF923B"},
	{12, "#BF813A"},
	{15, "#BC6733"},
	{20, "#8D4C32"},
	{24, "#5D341A"},
	{30, "#261716"},
}

// darkestHex is used for anything beyond the darkest band.
const darkestHex = "#0F0B0A"

// ColorHex maps an SRM value onto a fixed swatch for display.
func ColorHex(srm float64) string {
	for _, band := range srmBands {
		if srm <= band.maxSRM {
			return band.hex
		}
	}
	return darkestHex
}
