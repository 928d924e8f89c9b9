package models

// ChartDataPoint is one projected month. Liquidity and Assets are cumulative
// running balances since projection start, rounded to 2 decimal places at the
// point of emission.
type ChartDataPoint struct {
	Month     Date    `json:"month"`
	Liquidity float64 `json:"liquidity"`
	Assets    float64 `json:"assets"`
}
