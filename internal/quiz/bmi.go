package quiz

import "math"

// ComputeBMI returns weight / height² rounded to one decimal, or 0 when either
// input is out of a plausible human range.
func ComputeBMI(heightCm, weightKg float64) float64 {
	if heightCm < 100 || heightCm > 250 || weightKg < 30 || weightKg > 300 {
		return 0
	}
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*10) / 10
}
