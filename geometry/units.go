package geometry

import "math"

// HWPUNIT is 1/7200 inch; one point is exactly 100 HWPUNIT.
const (
	HwpunitsPerPoint = 100.0
	HwpunitsPerInch  = 7200.0
	MmPerInch        = 25.4
	PointsPerInch    = 72.0
)

// PointsToHwpunits converts points to HWPUNIT, rounding half away from zero.
func PointsToHwpunits(pt float64) int64 {
	return int64(math.Round(pt * HwpunitsPerPoint))
}

// HwpunitsToPoints converts HWPUNIT back to points.
func HwpunitsToPoints(u int64) float64 {
	return float64(u) / HwpunitsPerPoint
}

// MmToHwpunits converts millimetres to HWPUNIT.
func MmToHwpunits(mm float64) int64 {
	return int64(math.Round(mm * HwpunitsPerInch / MmPerInch))
}

// HwpunitsToMm converts HWPUNIT to millimetres.
func HwpunitsToMm(u int64) float64 {
	return float64(u) * MmPerInch / HwpunitsPerInch
}

// PointsToPixels converts a length in points to pixels at dpi.
func PointsToPixels(pt float64, dpi int) int {
	return int(math.Round(pt * float64(dpi) / PointsPerInch))
}

// FontSizeToHwpunits converts a font size in points to the HWPX height value.
func FontSizeToHwpunits(pt float64) int64 {
	return PointsToHwpunits(pt)
}
