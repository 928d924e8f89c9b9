package engine

// Vehicle value loss per month, as a fraction of the original purchase price.
// Rates step down with age: 2% through the first 2 years, 1.2% through years
// 3-4, 1% from year 5 on.
const (
	depreciationRateNew = 0.02
	depreciationRateMid = 0.012
	depreciationRateOld = 0.01
)

// monthlyDepreciation returns the value a vehicle loses during the given
// month of its life. ageMonths is zero-based months since purchase. Never
// negative.
func monthlyDepreciation(purchasePrice float64, ageMonths int) float64 {
	rate := depreciationRateOld
	switch {
	case ageMonths < 24:
		rate = depreciationRateNew
	case ageMonths < 48:
		rate = depreciationRateMid
	}
	loss := purchasePrice * rate
	if loss < 0 {
		return 0
	}
	return loss
}
