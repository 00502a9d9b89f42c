package domain

import (
	"fmt"
	"math"
)

// ServiceRating grades the dining experience from 1 (terrible) to 5 (excellent).
type ServiceRating int

// Service ratings.
const (
	RatingTerrible ServiceRating = iota + 1
	RatingPoor
	RatingOkay
	RatingGood
	RatingExcellent
)

// tipPercentages is indexed by rating; index 0 is unused.
var tipPercentages = [...]int{
	RatingTerrible:  5,
	RatingPoor:      10,
	RatingOkay:      15,
	RatingGood:      20,
	RatingExcellent: 25,
}

var ratingLabels = [...]string{
	RatingTerrible:  "terrible",
	RatingPoor:      "poor",
	RatingOkay:      "okay",
	RatingGood:      "good",
	RatingExcellent: "excellent",
}

// Valid reports whether r is within 1..5.
func (r ServiceRating) Valid() bool {
	return r >= RatingTerrible && r <= RatingExcellent
}

// Percentage returns the tip percentage for the rating, or 0 if r is invalid.
func (r ServiceRating) Percentage() int {
	if !r.Valid() {
		return 0
	}

	return tipPercentages[r]
}

// String returns the rating's label.
func (r ServiceRating) String() string {
	if !r.Valid() {
		return fmt.Sprintf("ServiceRating(%d)", int(r))
	}

	return ratingLabels[r]
}

// ParseServiceRating converts a numeric rating. It fails for fractional
// values, NaN and anything outside 1..5.
func ParseServiceRating(v float64) (ServiceRating, bool) {
	if v != math.Trunc(v) || v < float64(RatingTerrible) || v > float64(RatingExcellent) {
		return 0, false
	}

	return ServiceRating(v), true
}

// TipQuote is the result of a tip calculation.
type TipQuote struct {
	// TipPercentage is the whole-number percentage applied to the bill.
	TipPercentage int

	// TipAmount is the tip rounded half-up to cents.
	TipAmount float64

	// TotalAmount is TipAmount plus the unrounded bill.
	TotalAmount float64
}

// TipRate is one row of the rating table.
type TipRate struct {
	Rating     ServiceRating
	Label      string
	Percentage int
}

// TipTable returns the rating table in rating order.
func TipTable() []TipRate {
	rates := make([]TipRate, 0, len(tipPercentages)-1)
	for r := RatingTerrible; r <= RatingExcellent; r++ {
		rates = append(rates, TipRate{Rating: r, Label: r.String(), Percentage: r.Percentage()})
	}

	return rates
}

// CalculateTip quotes a tip for a bill and a 1..5 service rating.
// It returns false, and no quote, when the bill is not a positive finite
// amount or the rating is not a whole number in range.
func CalculateTip(billAmount, serviceRating float64) (TipQuote, bool) {
	rating, err := checkTipInput(billAmount, serviceRating)
	if err != nil {
		return TipQuote{}, false
	}

	pct := rating.Percentage()
	tip := roundCents(float64(pct) / 100 * billAmount)

	return TipQuote{
		TipPercentage: pct,
		TipAmount:     tip,
		TotalAmount:   tip + billAmount,
	}, true
}

// TipInputError explains why CalculateTip would return no quote.
// It returns nil when the input is acceptable.
func TipInputError(billAmount, serviceRating float64) error {
	_, err := checkTipInput(billAmount, serviceRating)
	return err
}

func checkTipInput(billAmount, serviceRating float64) (ServiceRating, error) {
	if !(billAmount > 0) || math.IsInf(billAmount, 1) {
		return 0, NewValidationErrorWithValue("billAmount", "must be a positive amount", billAmount)
	}

	rating, ok := ParseServiceRating(serviceRating)
	if !ok {
		return 0, NewValidationErrorWithValue("serviceRating", "must be a whole number from 1 to 5", serviceRating)
	}

	return rating, nil
}

// roundCents rounds half-up to two decimal places.
func roundCents(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}
