package service

import "math"

// clampRange acota v a [lo,hi]. NaN se trata como lo para que ningun
// historial malformado se filtre fuera de rango.
func clampRange(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clampRange(v, 0, 1)
}

// clampSigned acota a [-1,1]; NaN pasa a 0 (neutral).
func clampSigned(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clampRange(v, -1, 1)
}
