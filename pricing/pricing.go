package pricing

import "math"

// GSTRate is the proportional tax applied on top of every package base
// amount.
const GSTRate = 0.18

// Breakdown is the full price of a package in whole rupees.
type Breakdown struct {
	Base  int `json:"baseAmount"`
	GST   int `json:"gstAmount"`
	Total int `json:"totalAmount"`
}

// CalculateGST returns the GST on a base amount, rounded to the nearest
// rupee.
func CalculateGST(baseAmount int) int {
	return int(math.Round(float64(baseAmount) * GSTRate))
}

// CalculateBreakdown returns base, GST and total for a base amount.
func CalculateBreakdown(baseAmount int) Breakdown {
	gst := CalculateGST(baseAmount)
	return Breakdown{
		Base:  baseAmount,
		GST:   gst,
		Total: baseAmount + gst,
	}
}
