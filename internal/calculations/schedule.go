package calculations

import (
	"math"

	"github.com/cloud-ru/mortgage-engine-go/pkg/utils"
)

// ValidateLoanSpec проверяет инварианты кредита: сумма > 0, срок >= 1, ставка >= 0
func ValidateLoanSpec(spec LoanSpec) error {
	if !utils.IsFinite(spec.Principal) || spec.Principal <= 0 {
		return loanSpecError("сумма кредита должна быть положительной")
	}
	if spec.TermMonths < 1 {
		return loanSpecError("срок кредита должен быть не меньше одного месяца")
	}
	if !utils.IsFinite(spec.AnnualRatePercent) || spec.AnnualRatePercent < 0 {
		return loanSpecError("ставка не может быть отрицательной")
	}
	switch spec.PaymentType {
	case "", PaymentAnnuity, PaymentDifferentiated:
	default:
		return loanSpecError("неизвестный тип платежа %q", spec.PaymentType)
	}
	return nil
}

func (s LoanSpec) normalized() LoanSpec {
	if s.PaymentType == "" {
		s.PaymentType = PaymentAnnuity
	}
	s.Principal = utils.Round2(s.Principal)
	return s
}

// GenerateSchedule строит помесячный график платежей по кредиту
func GenerateSchedule(spec LoanSpec) (*CalculationResult, error) {
	if err := ValidateLoanSpec(spec); err != nil {
		return nil, err
	}
	spec = spec.normalized()

	a := newAmortizer(spec.Principal, spec.AnnualRatePercent, spec.TermMonths, spec.PaymentType)
	installment := a.payment()

	// основной график всегда занимает ровно TermMonths месяцев
	schedule := make([]ScheduleEntry, 0, spec.TermMonths)
	for m := 1; m <= spec.TermMonths; m++ {
		schedule = append(schedule, a.step(m))
	}

	result, err := summarize(spec.PaymentType, schedule)
	if err != nil {
		return nil, err
	}
	if spec.PaymentType == PaymentAnnuity {
		result.MonthlyPayment = installment
	}
	return result, nil
}

// summarize считает итоги графика и отбрасывает численно некорректные результаты
func summarize(paymentType PaymentType, schedule []ScheduleEntry) (*CalculationResult, error) {
	if err := checkSchedule(schedule); err != nil {
		return nil, err
	}
	totalInterest, totalPayments := totals(schedule)

	result := &CalculationResult{
		Schedule:      schedule,
		PaymentType:   paymentType,
		TotalInterest: totalInterest,
		TotalPayments: totalPayments,
	}
	if len(schedule) > 0 {
		result.FirstPayment = schedule[0].Payment
		result.LastPayment = schedule[len(schedule)-1].Payment
	}
	return result, nil
}

func totals(schedule []ScheduleEntry) (totalInterest, totalPayments float64) {
	for _, e := range schedule {
		totalInterest += e.Interest
		totalPayments += e.Payment
	}
	return utils.Round2(totalInterest), utils.Round2(totalPayments)
}

func checkSchedule(schedule []ScheduleEntry) error {
	for _, e := range schedule {
		if !utils.AllFinite(e.Payment, e.Principal, e.Interest, e.RemainingLoan) {
			return computationError("месяц %d: значение не является конечным числом", e.Month)
		}
		if e.RemainingLoan < -0.01 {
			return computationError("месяц %d: остаток кредита стал отрицательным", e.Month)
		}
	}
	return nil
}

// amortizer хранит состояние погашения между месяцами. Все сценарии
// (досрочное погашение, плавающая ставка, страховка, реструктуризация)
// используют одну и ту же рекуррентную формулу через amortizer.
//
// balance - остаток в копейках. Основной долг месяца равен разнице остатков,
// поэтому сумма долей совпадает с суммой кредита до копейки. Аннуитет
// считает точный остаток по замкнутой формуле от последнего пересчета
// платежа и не накапливает ошибку округления от месяца к месяцу.
type amortizer struct {
	paymentType     PaymentType
	balance         float64
	annualRate      float64
	monthlyRate     float64
	remainingMonths int
	installment     float64
	principalStep   float64

	planBalance float64
	planMonths  int
	planElapsed int
	// prepaid - досрочные платежи после пересчета, наращенные по ставке кредита
	prepaid float64
}

func newAmortizer(balance, annualRatePercent float64, months int, paymentType PaymentType) *amortizer {
	a := &amortizer{
		paymentType:     paymentType,
		balance:         utils.Round2(balance),
		remainingMonths: months,
	}
	a.setRate(annualRatePercent)
	a.reamortize()
	return a
}

func (a *amortizer) setRate(annualRatePercent float64) {
	a.annualRate = annualRatePercent
	a.monthlyRate = utils.MonthlyRate(annualRatePercent)
}

// reamortize пересчитывает платеж по текущему остатку на оставшийся срок
func (a *amortizer) reamortize() {
	if a.remainingMonths < 1 {
		return
	}
	if a.paymentType == PaymentDifferentiated {
		a.principalStep = a.balance / float64(a.remainingMonths)
		return
	}
	a.installment = AnnuityPayment(a.balance, a.annualRate, a.remainingMonths)
	a.planBalance = a.balance
	a.planMonths = a.remainingMonths
	a.planElapsed = 0
	a.prepaid = 0
}

// payment возвращает текущий аннуитетный платеж, округленный до копеек
func (a *amortizer) payment() float64 {
	return utils.Round2(a.installment)
}

// exactBalance - неокругленный остаток аннуитета:
// B0 * q^k * (q^(n-k) - 1) / (q^n - 1) за вычетом досрочных платежей
func (a *amortizer) exactBalance() float64 {
	k, n := a.planElapsed, a.planMonths
	var planned float64
	switch {
	case k >= n:
		planned = 0
	case a.monthlyRate == 0:
		planned = a.planBalance * float64(n-k) / float64(n)
	default:
		l := math.Log1p(a.monthlyRate)
		planned = a.planBalance * math.Exp(float64(k)*l) * math.Expm1(float64(n-k)*l) / math.Expm1(float64(n)*l)
	}
	return planned - a.prepaid
}

// step проводит один месяц погашения и возвращает запись графика
func (a *amortizer) step(month int) ScheduleEntry {
	var interest, next float64
	if a.paymentType == PaymentDifferentiated {
		interest = utils.Round2(a.balance * a.monthlyRate)
		next = utils.Round2(a.balance - a.differentiatedPrincipal())
	} else {
		interest = utils.Round2(math.Max(a.exactBalance(), 0) * a.monthlyRate)
		a.planElapsed++
		a.prepaid *= 1 + a.monthlyRate
		next = utils.Round2(a.exactBalance())
	}
	// последний месяц закрывает остаток целиком
	if a.remainingMonths <= 1 || next <= 0 {
		next = 0
	}
	if next > a.balance {
		next = a.balance
	}

	principalComponent := utils.Round2(a.balance - next)
	a.balance = next
	if a.remainingMonths > 0 {
		a.remainingMonths--
	}

	return ScheduleEntry{
		Month:         month,
		Payment:       utils.Round2(principalComponent + interest),
		Principal:     principalComponent,
		Interest:      interest,
		RemainingLoan: a.balance,
	}
}

// differentiatedPrincipal делит остаток в копейках на число месяцев, нужных
// при текущей доле основного долга, с округлением вверх. Лишние копейки
// приходятся на первые месяцы, и платежи не растут к концу срока.
func (a *amortizer) differentiatedPrincipal() float64 {
	cents := int64(math.Round(a.balance * 100))
	if cents <= 0 {
		return 0
	}
	months := a.remainingMonths
	if a.principalStep > 0 {
		if needed := int(math.Ceil(a.balance/a.principalStep - 1e-9)); needed < months {
			months = needed
		}
	}
	if months < 1 {
		months = 1
	}
	k := int64(months)
	return float64((cents+k-1)/k) / 100
}

// prepay списывает досрочный платеж с остатка; сумма ограничивается остатком
func (a *amortizer) prepay(amount float64) float64 {
	applied := utils.Round2(amount)
	if applied > a.balance {
		applied = a.balance
	}
	if applied < 0 {
		applied = 0
	}
	a.balance = utils.Round2(a.balance - applied)
	a.prepaid += applied
	return applied
}

func (a *amortizer) paidOff() bool {
	return a.balance <= 0
}
