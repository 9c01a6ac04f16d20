package layout

import "math"

// Scale bounds.
const (
	MinScale     = 0.1
	MaxScale     = 3.0
	MaxFontScale = 2.5
)

// Available-area rules: a fixed inset around each region and a floor so tiny
// viewports still get a usable area.
const (
	RegionInset   = 40.0
	MinRegionSide = 200.0
)

// Size is a width and height in points.
type Size struct {
	W float64
	H float64
}

// Scale says how to fit a ledger into its region. Upscaling enlarges the
// font and keeps geometry at 1; downscaling shrinks geometry and keeps the
// font at 1.
type Scale struct {
	Factor    float64
	Font      float64
	Geometric float64
}

// Effective is the overall size multiplier applied to the ledger.
func (s Scale) Effective() float64 {
	return s.Font * s.Geometric
}

// ScaleFor computes the fit of natural into avail.
func ScaleFor(natural, avail Size) Scale {
	factor := math.Min(
		avail.W/math.Max(1, natural.W),
		avail.H/math.Max(1, natural.H),
	)
	factor = math.Max(MinScale, math.Min(MaxScale, factor))

	if factor > 1 {
		return Scale{Factor: factor, Font: math.Min(MaxFontScale, factor), Geometric: 1}
	}
	return Scale{Factor: factor, Font: 1, Geometric: factor}
}

// Available is the area a ledger may fill on a page of the given size.
func Available(page Size, full bool) Size {
	if full {
		return Size{
			W: math.Max(MinRegionSide, page.W-RegionInset),
			H: math.Max(MinRegionSide, page.H-RegionInset),
		}
	}
	return Size{
		W: math.Max(MinRegionSide, page.W*0.5-RegionInset),
		H: math.Max(MinRegionSide, page.H*0.5-RegionInset),
	}
}
