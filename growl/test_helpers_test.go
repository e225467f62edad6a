package growl

import "math"

func windowRMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func allFinite(samples []float32) bool {
	for _, s := range samples {
		if !isFinite(s) {
			return false
		}
	}
	return true
}

func relClose(got, want, tol float64) bool {
	scale := math.Max(1, math.Abs(want))
	return math.Abs(got-want) <= tol*scale
}
