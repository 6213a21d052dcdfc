package calculations

// DifferentialSchedule рассчитывает график дифференцированного кредита:
// основной долг гасится равными долями, проценты начисляются на остаток
func DifferentialSchedule(principal, annualRatePercent float64, months int) (*CalculationResult, error) {
	return GenerateSchedule(LoanSpec{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermMonths:        months,
		PaymentType:       PaymentDifferentiated,
	})
}
