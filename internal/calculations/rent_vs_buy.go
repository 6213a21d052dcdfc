package calculations

import (
	"math"

	"github.com/cloud-ru/mortgage-engine-go/pkg/utils"
)

// RentVsBuyParams - параметры сравнения покупки в ипотеку и аренды
type RentVsBuyParams struct {
	PropertyValue       float64
	DownPayment         float64
	InterestRatePercent float64
	TermMonths          int
	PaymentType         PaymentType

	MonthlyRent               float64
	RentGrowthRatePercent     float64
	PropertyGrowthRatePercent float64
	MaintenanceCostPercent    float64
	PropertyTaxPercent        float64
	RentalIncome              float64
	TaxBenefitRatePercent     float64
	InflationRatePercent      float64
	OpportunityCostPercent    float64
}

func (p RentVsBuyParams) validate() error {
	if !utils.IsFinite(p.PropertyValue) || p.PropertyValue <= 0 {
		return scenarioError("стоимость недвижимости должна быть положительной")
	}
	if !utils.IsFinite(p.DownPayment) || p.DownPayment < 0 || p.DownPayment >= p.PropertyValue {
		return scenarioError("первоначальный взнос должен быть в диапазоне [0; стоимость недвижимости)")
	}
	nonNegative := map[string]float64{
		"monthlyRent":            p.MonthlyRent,
		"maintenanceCostPercent": p.MaintenanceCostPercent,
		"propertyTaxPercent":     p.PropertyTaxPercent,
		"rentalIncome":           p.RentalIncome,
		"taxBenefitRate":         p.TaxBenefitRatePercent,
	}
	for name, v := range nonNegative {
		if !utils.IsFinite(v) || v < 0 {
			return scenarioError("%s: значение не может быть отрицательным", name)
		}
	}
	growth := map[string]float64{
		"rentGrowthRate":      p.RentGrowthRatePercent,
		"propertyGrowthRate":  p.PropertyGrowthRatePercent,
		"inflationRate":       p.InflationRatePercent,
		"opportunityCostRate": p.OpportunityCostPercent,
	}
	for name, v := range growth {
		if !utils.IsFinite(v) || v <= -100 {
			return scenarioError("%s: значение должно быть больше -100%%", name)
		}
	}
	return nil
}

// RentVsBuy строит две траектории капитала. Покупатель владеет долей в
// недвижимости (прогнозная стоимость минус остаток кредита). Арендатор
// инвестирует первоначальный взнос и ежемесячную разницу расходов
// (покупка минус аренда) под opportunityCost с ежемесячной капитализацией.
// Месяц безубыточности - первый месяц, когда капитал покупателя не меньше
// капитала арендатора; после него флаг BreakEven остается true.
func RentVsBuy(p RentVsBuyParams) (*RentVsBuyResult, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	mortgage, err := GenerateSchedule(LoanSpec{
		Principal:         p.PropertyValue - p.DownPayment,
		AnnualRatePercent: p.InterestRatePercent,
		TermMonths:        p.TermMonths,
		PaymentType:       p.PaymentType,
	})
	if err != nil {
		return nil, err
	}

	property, err := Project(ForecastParams{
		InitialValue:         p.PropertyValue,
		GrowthRatePercent:    p.PropertyGrowthRatePercent,
		Months:               p.TermMonths,
		Model:                ModelExponential,
		InflationRatePercent: p.InflationRatePercent,
	})
	if err != nil {
		return nil, err
	}

	rentGrowth := utils.MonthlyCompoundRate(p.RentGrowthRatePercent)
	costGrowth := utils.MonthlyCompoundRate(p.InflationRatePercent)
	baseMaintenance := p.PropertyValue * p.MaintenanceCostPercent / 100 / 12
	baseTax := p.PropertyValue * p.PropertyTaxPercent / 100 / 12

	account := newInvestmentAccount(p.DownPayment, p.OpportunityCostPercent)

	points := make([]ComparisonPoint, 0, p.TermMonths)
	var totalBuy, totalRent float64
	var breakEvenMonth *int

	for m := 1; m <= p.TermMonths; m++ {
		var payment, interest, remaining float64
		if m <= len(mortgage.Schedule) {
			row := mortgage.Schedule[m-1]
			payment, interest, remaining = row.Payment, row.Interest, row.RemainingLoan
		}

		rentFactor := math.Pow(1+rentGrowth, float64(m-1))
		costFactor := math.Pow(1+costGrowth, float64(m-1))

		rent := p.MonthlyRent * rentFactor
		maintenance := baseMaintenance * costFactor
		tax := baseTax * costFactor
		income := p.RentalIncome * rentFactor
		taxBenefit := interest * p.TaxBenefitRatePercent / 100

		buyCost := payment + maintenance + tax - income - taxBenefit
		rentCost := rent

		earned := account.accrue()
		account.contribute(buyCost - rentCost)

		forecast := property.Forecast[m-1]
		equity := forecast.NominalValue - remaining

		point := ComparisonPoint{
			Month:             m,
			MortgagePayment:   payment,
			PropertyTax:       utils.Round2(tax),
			Maintenance:       utils.Round2(maintenance),
			RentalIncome:      utils.Round2(income),
			TaxBenefit:        utils.Round2(taxBenefit),
			TotalBuyCost:      utils.Round2(buyCost),
			RentPayment:       utils.Round2(rent),
			OpportunityCost:   utils.Round2(earned),
			TotalRentCost:     utils.Round2(rentCost),
			PropertyValue:     forecast.NominalValue,
			PropertyRealValue: forecast.RealValue,
			PropertyEquity:    utils.Round2(equity),
			InvestmentValue:   utils.Round2(account.balance),
		}
		point.NetWorthBuy = point.PropertyEquity
		point.NetWorthRent = point.InvestmentValue

		if !utils.AllFinite(buyCost, rentCost, account.balance, equity) {
			return nil, computationError("месяц %d: значение не является конечным числом", m)
		}

		if breakEvenMonth == nil && point.NetWorthBuy >= point.NetWorthRent {
			month := m
			breakEvenMonth = &month
		}
		point.BreakEven = breakEvenMonth != nil

		totalBuy += buyCost
		totalRent += rentCost
		points = append(points, point)
	}

	last := points[len(points)-1]
	result := &RentVsBuyResult{
		Comparison:           points,
		BreakEvenMonth:       breakEvenMonth,
		TotalBuyCosts:        utils.Round2(totalBuy),
		TotalRentCosts:       utils.Round2(totalRent),
		FinalPropertyValue:   last.PropertyValue,
		FinalInvestmentValue: last.InvestmentValue,
	}
	result.BuyPosition = utils.Round2(result.FinalPropertyValue - result.TotalBuyCosts)
	result.RentPosition = utils.Round2(result.FinalInvestmentValue - result.TotalRentCosts)
	if breakEvenMonth != nil {
		years := float64(*breakEvenMonth) / 12
		result.BreakEvenYears = &years
	}
	return result, nil
}
