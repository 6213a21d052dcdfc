package calculations

import (
	"sort"

	"github.com/cloud-ru/mortgage-engine-go/pkg/utils"
)

// ValidateEarlyPayments проверяет досрочные платежи относительно срока кредита
func ValidateEarlyPayments(payments []EarlyPayment, termMonths int) error {
	for i, p := range payments {
		if p.Month < 1 || p.Month > termMonths {
			return earlyPaymentError("платеж #%d: месяц %d вне срока кредита [1; %d]", i+1, p.Month, termMonths)
		}
		if !utils.IsFinite(p.Amount) || p.Amount <= 0 {
			return earlyPaymentError("платеж #%d: сумма должна быть положительной", i+1)
		}
		switch p.Effect {
		case "", ReduceTerm, ReducePayment:
		default:
			return earlyPaymentError("платеж #%d: неизвестный тип %q", i+1, p.Effect)
		}
	}
	return nil
}

// EarlyRepayment строит график с досрочными погашениями и обычный график для сравнения.
// Досрочный платеж списывается после планового платежа месяца. При reduce_term
// платеж сохраняется и срок сокращается, при reduce_payment срок сохраняется,
// а платеж пересчитывается по новому остатку.
func EarlyRepayment(spec LoanSpec, payments []EarlyPayment) (*EarlyRepaymentResult, error) {
	if err := ValidateLoanSpec(spec); err != nil {
		return nil, err
	}
	if err := ValidateEarlyPayments(payments, spec.TermMonths); err != nil {
		return nil, err
	}
	spec = spec.normalized()

	regular, err := GenerateSchedule(spec)
	if err != nil {
		return nil, err
	}

	byMonth := groupEarlyPayments(payments)

	a := newAmortizer(spec.Principal, spec.AnnualRatePercent, spec.TermMonths, spec.PaymentType)
	schedule := make([]EarlyScheduleEntry, 0, spec.TermMonths)
	plain := make([]ScheduleEntry, 0, spec.TermMonths)

	for m := 1; m <= spec.TermMonths && !a.paidOff(); m++ {
		entry := a.step(m)
		regularPayment := entry.Payment

		var applied float64
		if ep, ok := byMonth[m]; ok && !a.paidOff() {
			applied = a.prepay(ep.Amount)
			if ep.Effect == ReducePayment && !a.paidOff() {
				a.reamortize()
			}
			entry.Principal = utils.Round2(entry.Principal + applied)
			entry.Payment = utils.Round2(entry.Payment + applied)
			entry.RemainingLoan = a.balance
		}

		monthly := regularPayment
		if spec.PaymentType == PaymentAnnuity && !a.paidOff() {
			monthly = a.payment()
		}

		plain = append(plain, entry)
		schedule = append(schedule, EarlyScheduleEntry{
			ScheduleEntry:  entry,
			EarlyPayment:   applied,
			MonthlyPayment: monthly,
		})
	}

	if err := checkSchedule(plain); err != nil {
		return nil, err
	}
	totalInterest, totalPayments := totals(plain)

	return &EarlyRepaymentResult{
		EarlySchedule:        schedule,
		RegularSchedule:      regular.Schedule,
		TotalPaymentsEarly:   totalPayments,
		TotalPaymentsRegular: regular.TotalPayments,
		TotalInterestEarly:   totalInterest,
		TotalInterestRegular: regular.TotalInterest,
		InterestSaved:        utils.Round2(regular.TotalInterest - totalInterest),
		MonthsSaved:          len(regular.Schedule) - len(schedule),
	}, nil
}

// groupEarlyPayments суммирует платежи одного месяца; тип берется у последнего из них
func groupEarlyPayments(payments []EarlyPayment) map[int]EarlyPayment {
	sorted := make([]EarlyPayment, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Month < sorted[j].Month })

	byMonth := make(map[int]EarlyPayment, len(sorted))
	for _, p := range sorted {
		effect := p.Effect
		if effect == "" {
			effect = ReduceTerm
		}
		agg := byMonth[p.Month]
		agg.Month = p.Month
		agg.Amount += p.Amount
		agg.Effect = effect
		byMonth[p.Month] = agg
	}
	return byMonth
}
