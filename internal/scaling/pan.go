package scaling

import "math"

// MinPanDiameterCM is the smallest pan the calculator will suggest.
const MinPanDiameterCM = 18

// CalculatePanSize returns the pan diameter in centimeters for targetServings,
// given a base recipe baked in a basePanDiameter pan. Servings follow the pan
// area, so the diameter follows the square root of the serving ratio. The
// result is rounded to the nearest even centimeter and never below
// MinPanDiameterCM.
func CalculatePanSize(targetServings, baseServings int, basePanDiameter float64) int {
	if baseServings <= 0 || targetServings <= 0 {
		return MinPanDiameterCM
	}

	d := basePanDiameter * math.Sqrt(float64(targetServings)/float64(baseServings))
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return MinPanDiameterCM
	}

	even := int(math.Round(d/2)) * 2
	return max(even, MinPanDiameterCM)
}
