package calculations

import (
	"sort"

	"github.com/cloud-ru/mortgage-engine-go/pkg/utils"
)

// RatePath - отсортированная по месяцам последовательность изменений ставки
type RatePath struct {
	initial float64
	changes []RateChangePoint
}

// NewRatePath сортирует точки изменения; при совпадении месяцев побеждает последняя
func NewRatePath(initialRatePercent float64, changes []RateChangePoint) RatePath {
	sorted := make([]RateChangePoint, len(changes))
	copy(sorted, changes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Month < sorted[j].Month })

	dedup := sorted[:0]
	for _, c := range sorted {
		if n := len(dedup); n > 0 && dedup[n-1].Month == c.Month {
			dedup[n-1] = c
			continue
		}
		dedup = append(dedup, c)
	}
	return RatePath{initial: initialRatePercent, changes: dedup}
}

// At возвращает ставку, действующую в месяце month: последнее изменение
// не позже этого месяца, а до первого изменения - начальная ставка
func (p RatePath) At(month int) float64 {
	i := sort.Search(len(p.changes), func(i int) bool { return p.changes[i].Month > month })
	if i == 0 {
		return p.initial
	}
	return p.changes[i-1].AnnualRatePercent
}

// changesAt сообщает, меняется ли ставка ровно в месяце month
func (p RatePath) changesAt(month int) bool {
	i := sort.Search(len(p.changes), func(i int) bool { return p.changes[i].Month >= month })
	return i < len(p.changes) && p.changes[i].Month == month
}

// FloatingSchedule строит график с плавающей ставкой. Проценты каждого месяца
// начисляются по ставке из path; при изменении ставки аннуитетный платеж
// пересчитывается на оставшийся срок, доля основного долга у
// дифференцированной схемы остается прежней.
func FloatingSchedule(spec LoanSpec, path RatePath) ([]ScheduleEntry, error) {
	if err := ValidateLoanSpec(spec); err != nil {
		return nil, err
	}
	spec = spec.normalized()
	if initial := path.At(1); !utils.IsFinite(initial) || initial < 0 {
		return nil, scenarioError("начальная ставка не может быть отрицательной")
	}

	a := newAmortizer(spec.Principal, path.At(1), spec.TermMonths, spec.PaymentType)
	schedule := make([]ScheduleEntry, 0, spec.TermMonths)
	for m := 1; m <= spec.TermMonths && !a.paidOff(); m++ {
		if m > 1 && path.changesAt(m) {
			rate := path.At(m)
			if !utils.IsFinite(rate) || rate < 0 {
				return nil, scenarioError("месяц %d: ставка не может быть отрицательной", m)
			}
			a.setRate(rate)
			if spec.PaymentType == PaymentAnnuity {
				a.reamortize()
			}
		}
		schedule = append(schedule, a.step(m))
	}
	if err := checkSchedule(schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// CentralBankParams - параметры кредита, привязанного к ключевой ставке
type CentralBankParams struct {
	Loan             LoanSpec
	CentralBankRate  float64
	Margin           float64
	PredictedCbRates []RateChangePoint
}

// CentralBankRate сравнивает плавающую ставку (ключевая ставка + маржа) с
// фиксированной ставкой Loan.AnnualRatePercent
func CentralBankRate(p CentralBankParams) (*CentralBankResult, error) {
	if err := ValidateLoanSpec(p.Loan); err != nil {
		return nil, err
	}
	if !utils.AllFinite(p.CentralBankRate, p.Margin) {
		return nil, scenarioError("ключевая ставка и маржа должны быть конечными числами")
	}
	if p.CentralBankRate+p.Margin < 0 {
		return nil, scenarioError("итоговая ставка не может быть отрицательной")
	}

	cbPath := make([]RateChangePoint, 0, len(p.PredictedCbRates))
	loanPath := make([]RateChangePoint, 0, len(p.PredictedCbRates))
	for _, c := range p.PredictedCbRates {
		if c.Month < 1 || c.Month > p.Loan.TermMonths {
			return nil, scenarioError("прогноз ставки: месяц %d вне срока кредита", c.Month)
		}
		if !utils.IsFinite(c.AnnualRatePercent) || c.AnnualRatePercent+p.Margin < 0 {
			return nil, scenarioError("прогноз ставки: месяц %d дает отрицательную ставку", c.Month)
		}
		cbPath = append(cbPath, c)
		loanPath = append(loanPath, RateChangePoint{Month: c.Month, AnnualRatePercent: c.AnnualRatePercent + p.Margin})
	}
	cb := NewRatePath(p.CentralBankRate, cbPath)
	rates := NewRatePath(p.CentralBankRate+p.Margin, loanPath)

	floating, err := FloatingSchedule(p.Loan, rates)
	if err != nil {
		return nil, err
	}
	fixed, err := GenerateSchedule(p.Loan)
	if err != nil {
		return nil, err
	}

	cbSchedule := make([]FloatingEntry, 0, len(floating))
	for _, row := range floating {
		cbSchedule = append(cbSchedule, FloatingEntry{
			ScheduleEntry: row,
			CbRate:        cb.At(row.Month),
			InterestRate:  rates.At(row.Month),
		})
	}
	cbInterest, cbPayments := totals(floating)

	return &CentralBankResult{
		CbSchedule:         cbSchedule,
		FixedSchedule:      fixed.Schedule,
		TotalPaymentsCb:    cbPayments,
		TotalPaymentsFixed: fixed.TotalPayments,
		TotalInterestCb:    cbInterest,
		TotalInterestFixed: fixed.TotalInterest,
		PaymentDifference:  utils.Round2(cbPayments - fixed.TotalPayments),
		InterestDifference: utils.Round2(cbInterest - fixed.TotalInterest),
	}, nil
}
