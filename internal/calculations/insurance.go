package calculations

import (
	"github.com/cloud-ru/mortgage-engine-go/pkg/utils"
)

// MonthlyInsurance возвращает фиксированный страховой взнос: сумма * ставка / 100 / 12
func MonthlyInsurance(principal, insuranceRatePercent float64) float64 {
	return utils.Round2(principal * insuranceRatePercent / 100.0 / 12.0)
}

// WithInsurance добавляет страховой взнос к каждому месяцу в пределах [1; insuranceTermMonths].
// Амортизация основного долга и процентов не меняется.
func WithInsurance(spec LoanSpec, insuranceRatePercent float64, insuranceTermMonths int) (*InsuranceResult, error) {
	if err := ValidateLoanSpec(spec); err != nil {
		return nil, err
	}
	if !utils.IsFinite(insuranceRatePercent) || insuranceRatePercent < 0 {
		return nil, scenarioError("ставка страхования не может быть отрицательной")
	}
	if insuranceTermMonths < 0 || insuranceTermMonths > spec.TermMonths {
		return nil, scenarioError("срок страхования должен быть в диапазоне [0; %d] месяцев", spec.TermMonths)
	}
	spec = spec.normalized()

	base, err := GenerateSchedule(spec)
	if err != nil {
		return nil, err
	}

	monthly := MonthlyInsurance(spec.Principal, insuranceRatePercent)
	schedule := make([]InsuranceEntry, 0, len(base.Schedule))
	totalWithInsurance := 0.0
	coveredMonths := 0
	for _, row := range base.Schedule {
		var premium float64
		if row.Month <= insuranceTermMonths {
			premium = monthly
			coveredMonths++
		}
		total := utils.Round2(row.Payment + premium)
		totalWithInsurance += total
		schedule = append(schedule, InsuranceEntry{
			ScheduleEntry: row,
			Insurance:     premium,
			TotalPayment:  total,
		})
	}

	totalInsurance := utils.Round2(monthly * float64(coveredMonths))
	totalWithInsurance = utils.Round2(totalWithInsurance)
	if !utils.AllFinite(totalInsurance, totalWithInsurance) {
		return nil, computationError("итоги страхования не являются конечными числами")
	}

	return &InsuranceResult{
		InsuranceSchedule:          schedule,
		MonthlyInsurance:           monthly,
		InsuranceTermMonths:        insuranceTermMonths,
		TotalInsurance:             totalInsurance,
		TotalPaymentsWithInsurance: totalWithInsurance,
		TotalPaymentsRegular:       base.TotalPayments,
		IncreaseTotalPayments:      utils.Round2(totalWithInsurance - base.TotalPayments),
	}, nil
}
