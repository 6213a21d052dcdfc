package calculations

import (
	"github.com/cloud-ru/mortgage-engine-go/pkg/utils"
)

// ComparePaymentTypes сравнивает аннуитетную и дифференцированную схемы для одного кредита
func ComparePaymentTypes(principal, annualRatePercent float64, months int) (*PaymentTypeComparison, error) {
	// Рассчитываем оба типа кредитов
	annuityResult, err := AnnuitySchedule(principal, annualRatePercent, months)
	if err != nil {
		return nil, err
	}

	differentialResult, err := DifferentialSchedule(principal, annualRatePercent, months)
	if err != nil {
		return nil, err
	}

	totalPaidDiff := utils.Round2(annuityResult.TotalPayments - differentialResult.TotalPayments)
	interestDiff := utils.Round2(annuityResult.TotalInterest - differentialResult.TotalInterest)

	// Определяем, какой кредит выгоднее
	var cheaperType string
	var savings float64
	switch {
	case totalPaidDiff > 0:
		cheaperType = string(PaymentDifferentiated)
		savings = totalPaidDiff
	case totalPaidDiff < 0:
		cheaperType = string(PaymentAnnuity)
		savings = -totalPaidDiff
	default:
		cheaperType = "equal"
	}

	return &PaymentTypeComparison{
		Annuity:        *annuityResult,
		Differentiated: *differentialResult,
		TotalPaidDiff:  totalPaidDiff,
		InterestDiff:   interestDiff,
		CheaperType:    cheaperType,
		Savings:        savings,
	}, nil
}
