package visualizer

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// Info holds the read-only values shown beside the form.
type Info struct {
	Ratio       float64 `json:"ratio"`
	RatioText   string  `json:"ratioText"`
	SurfaceArea float64 `json:"surfaceArea"`
	SurfaceText string  `json:"surfaceText"`
	TabletUsage float64 `json:"tabletUsage"`
	UsageText   string  `json:"usageText"`
}

func computeInfo(tablet TabletDimensions, area AreaDimensions) Info {
	info := Info{RatioText: "-"}
	if area.Height > 0 {
		info.Ratio = area.Width / area.Height
		info.RatioText = formatRatio(info.Ratio)
	}
	info.SurfaceArea = area.Width * area.Height
	info.SurfaceText = humanize.FormatFloat("#,###.#", info.SurfaceArea) + " mm²"
	if tabletSurface := tablet.Width * tablet.Height; tabletSurface > 0 {
		info.TabletUsage = info.SurfaceArea / tabletSurface * 100
	}
	info.UsageText = strconv.FormatFloat(info.TabletUsage, 'f', 1, 64) + "%"
	return info
}

// Info returns the derived display values for the last successful sync.
func (v *Visualizer) Info() Info {
	return computeInfo(v.tablet, v.area)
}
