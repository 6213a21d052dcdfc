package calculations

import (
	"math"
)

// AnnuityPayment возвращает аннуитетный платеж без округления:
// A = P * r / (1 - (1+r)^-n), при нулевой ставке P / n
func AnnuityPayment(principal, annualRatePercent float64, months int) float64 {
	if months < 1 {
		return 0
	}
	r := annualRatePercent / 100.0 / 12.0
	n := float64(months)
	if r == 0.0 {
		return principal / n
	}
	return principal * r / -math.Expm1(-n*math.Log1p(r))
}

// AnnuitySchedule рассчитывает график аннуитетного кредита
func AnnuitySchedule(principal, annualRatePercent float64, months int) (*CalculationResult, error) {
	return GenerateSchedule(LoanSpec{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermMonths:        months,
		PaymentType:       PaymentAnnuity,
	})
}
