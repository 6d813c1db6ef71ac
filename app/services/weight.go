package services

import "math"

// Weight parameters: sessions at the baseline distance earn a full weight
// of 1.0; sigma controls how steeply shorter sessions are discounted.
const (
	WeightBaseline = 1000
	WeightSigma    = 550
)

// ActivityWeight converts a raw session distance (metres) into a
// dimensionless weight, rounded to 2 decimal places.
//
// At or below the baseline the weight follows a Gaussian curve peaking at
// 1.0, so a short session still earns credit proportional to how close it
// came. Above the baseline the bonus is logarithmic: strictly increasing
// but with diminishing returns, so overshooting never scales linearly.
//
// A zero distance earns no credit at all. Negative distances are a
// validation error.
func ActivityWeight(distance int) (float64, error) {
	if distance < 0 {
		return 0, Validationf("distance cannot be negative: %d", distance)
	}
	if distance == 0 {
		return 0, nil
	}

	deviation := float64(distance - WeightBaseline)
	if distance <= WeightBaseline {
		gaussian := math.Exp(-(deviation * deviation) / (2 * WeightSigma * WeightSigma))
		return round2(gaussian), nil
	}

	extraRatio := deviation / WeightBaseline
	return round2(1.0 + math.Log(1+extraRatio)), nil
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
