package calculations

import (
	"github.com/cloud-ru/mortgage-engine-go/pkg/utils"
)

// RestructuringTerms задает новые условия; нулевые указатели означают
// сохранение исходной ставки и оставшегося срока
type RestructuringTerms struct {
	MonthsPaid           int
	NewAnnualRatePercent *float64
	NewTermMonths        *int
}

// Restructure пересчитывает остаток кредита после MonthsPaid платежей по новым условиям
func Restructure(original LoanSpec, terms RestructuringTerms) (*RestructuringResult, error) {
	if err := ValidateLoanSpec(original); err != nil {
		return nil, err
	}
	original = original.normalized()

	if terms.MonthsPaid < 0 || terms.MonthsPaid >= original.TermMonths {
		return nil, scenarioError("число оплаченных месяцев должно быть в диапазоне [0; %d)", original.TermMonths)
	}

	newRate := original.AnnualRatePercent
	if terms.NewAnnualRatePercent != nil {
		newRate = *terms.NewAnnualRatePercent
	}
	if !utils.IsFinite(newRate) || newRate < 0 {
		return nil, scenarioError("новая ставка не может быть отрицательной")
	}
	newTerm := original.TermMonths - terms.MonthsPaid
	if terms.NewTermMonths != nil {
		newTerm = *terms.NewTermMonths
	}
	if newTerm < 1 {
		return nil, scenarioError("новый срок должен быть не меньше одного месяца")
	}

	base, err := GenerateSchedule(original)
	if err != nil {
		return nil, err
	}
	orig := base.Schedule

	remaining := original.Principal
	if terms.MonthsPaid > 0 {
		if terms.MonthsPaid <= len(orig) {
			remaining = orig[terms.MonthsPaid-1].RemainingLoan
		} else {
			remaining = 0
		}
	}

	var restructured []ScheduleEntry
	var restructuredResult *CalculationResult
	if remaining > 0 {
		res, err := GenerateSchedule(LoanSpec{
			Principal:         remaining,
			AnnualRatePercent: newRate,
			TermMonths:        newTerm,
			PaymentType:       original.PaymentType,
		})
		if err != nil {
			return nil, err
		}
		restructured = res.Schedule
		restructuredResult = res
	}

	future := len(orig) - terms.MonthsPaid
	if future < 0 {
		future = 0
	}
	horizon := future
	if len(restructured) > horizon {
		horizon = len(restructured)
	}

	comparison := make([]RestructuringPoint, 0, terms.MonthsPaid+horizon)
	for i := 0; i < terms.MonthsPaid && i < len(orig); i++ {
		row := orig[i]
		comparison = append(comparison, RestructuringPoint{
			Month:                 row.Month,
			OriginalPayment:       row.Payment,
			RestructuredPayment:   row.Payment,
			OriginalRemaining:     row.RemainingLoan,
			RestructuredRemaining: row.RemainingLoan,
			Status:                BeforeRestructuring,
		})
	}
	for k := 0; k < horizon; k++ {
		point := RestructuringPoint{
			Month:  terms.MonthsPaid + k + 1,
			Status: AfterRestructuring,
		}
		if idx := terms.MonthsPaid + k; idx < len(orig) {
			point.OriginalPayment = orig[idx].Payment
			point.OriginalRemaining = orig[idx].RemainingLoan
		}
		if k < len(restructured) {
			point.RestructuredPayment = restructured[k].Payment
			point.RestructuredRemaining = restructured[k].RemainingLoan
		}
		point.PaymentDifference = utils.Round2(point.RestructuredPayment - point.OriginalPayment)
		comparison = append(comparison, point)
	}

	var tail []ScheduleEntry
	if terms.MonthsPaid < len(orig) {
		tail = orig[terms.MonthsPaid:]
	}
	origInterest, origPayments := totals(tail)
	restrInterest, restrPayments := totals(restructured)

	result := &RestructuringResult{
		OriginalSchedule:          orig,
		RestructuredSchedule:      restructured,
		Comparison:                comparison,
		RemainingBalance:          remaining,
		OriginalRemainingPayments: origPayments,
		RestructuredTotalPayments: restrPayments,
		OriginalRemainingInterest: origInterest,
		RestructuredTotalInterest: restrInterest,
		OriginalRemainingTerm:     len(tail),
		RestructuredTerm:          len(restructured),
		Savings:                   utils.Round2(origPayments - restrPayments),
	}
	if len(tail) > 0 {
		result.OriginalMonthlyPayment = monthlyPayment(base, tail[0])
	}
	if len(restructured) > 0 {
		result.RestructuredMonthlyPayment = monthlyPayment(restructuredResult, restructured[0])
	}
	return result, nil
}

// monthlyPayment - аннуитетный платеж графика, для дифференцированного
// графика платеж первого месяца периода
func monthlyPayment(result *CalculationResult, first ScheduleEntry) float64 {
	if result.PaymentType == PaymentAnnuity {
		return result.MonthlyPayment
	}
	return first.Payment
}
