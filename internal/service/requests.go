package service

import (
	"fmt"
	"strings"

	"github.com/cloud-ru/mortgage-engine-go/internal/calculations"
	"github.com/cloud-ru/mortgage-engine-go/internal/config"
	"github.com/cloud-ru/mortgage-engine-go/internal/validators"
	"github.com/cloud-ru/mortgage-engine-go/pkg/utils"
)

// CalculateRequest - запрос графика платежей
type CalculateRequest struct {
	LoanAmount    float64 `json:"loanAmount" yaml:"loanAmount"`
	InterestRate  float64 `json:"interestRate" yaml:"interestRate"`
	LoanTermYears float64 `json:"loanTermYears" yaml:"loanTermYears"`
	PaymentType   string  `json:"paymentType" yaml:"paymentType"`
}

func (r CalculateRequest) spec(cfg *config.Config) (calculations.LoanSpec, error) {
	return loanSpec(cfg, loanFields{
		amount: r.LoanAmount, rate: r.InterestRate, years: r.LoanTermYears, paymentType: r.PaymentType,
		rateField: "interestRate", termField: "loanTermYears",
	})
}

// ForecastRequest - запрос прогноза стоимости недвижимости
type ForecastRequest struct {
	InitialValue       float64   `json:"initialValue" yaml:"initialValue"`
	GrowthRate         float64   `json:"growthRate" yaml:"growthRate"`
	Years              float64   `json:"years" yaml:"years"`
	Model              string    `json:"model" yaml:"model"`
	InflationRate      float64   `json:"inflationRate" yaml:"inflationRate"`
	RegionalAdjustment float64   `json:"regionalAdjustment" yaml:"regionalAdjustment"`
	SeasonalFactors    []float64 `json:"seasonalFactors,omitempty" yaml:"seasonalFactors"`
}

func (r ForecastRequest) params(cfg *config.Config) (calculations.ForecastParams, error) {
	var c validators.Collector
	c.Add(validators.CheckPrincipal(cfg, "initialValue", r.InitialValue))
	c.Add(validators.CheckGrowthRate(cfg, "growthRate", r.GrowthRate))
	c.Add(validators.CheckGrowthRate(cfg, "inflationRate", r.InflationRate))
	if !utils.IsFinite(r.RegionalAdjustment) {
		c.Add(fmt.Errorf("regionalAdjustment: значение не является конечным числом"))
	}
	months, err := validators.CheckTermYears(cfg, "years", r.Years)
	c.Add(err)

	model := calculations.ForecastModel(strings.ToLower(strings.TrimSpace(r.Model)))
	switch model {
	case "", calculations.ModelLinear, calculations.ModelExponential, calculations.ModelML:
	default:
		c.Add(fmt.Errorf("model: неизвестная модель %q", r.Model))
	}
	if err := c.Err(calculations.ErrInvalidScenarioParameter); err != nil {
		return calculations.ForecastParams{}, err
	}

	return calculations.ForecastParams{
		InitialValue:         r.InitialValue,
		GrowthRatePercent:    r.GrowthRate,
		Months:               months,
		Model:                model,
		InflationRatePercent: r.InflationRate,
		RegionalAdjustment:   r.RegionalAdjustment,
		SeasonalFactors:      r.SeasonalFactors,
	}, nil
}

// CompareRequest - запрос сравнения покупки и аренды
type CompareRequest struct {
	PropertyValue          float64 `json:"propertyValue" yaml:"propertyValue"`
	DownPayment            float64 `json:"downPayment" yaml:"downPayment"`
	InterestRate           float64 `json:"interestRate" yaml:"interestRate"`
	LoanTermYears          float64 `json:"loanTermYears" yaml:"loanTermYears"`
	PaymentType            string  `json:"paymentType" yaml:"paymentType"`
	MonthlyRent            float64 `json:"monthlyRent" yaml:"monthlyRent"`
	RentGrowthRate         float64 `json:"rentGrowthRate" yaml:"rentGrowthRate"`
	PropertyGrowthRate     float64 `json:"propertyGrowthRate" yaml:"propertyGrowthRate"`
	MaintenanceCostPercent float64 `json:"maintenanceCostPercent" yaml:"maintenanceCostPercent"`
	PropertyTaxPercent     float64 `json:"propertyTaxPercent" yaml:"propertyTaxPercent"`
	RentalIncome           float64 `json:"rentalIncome" yaml:"rentalIncome"`
	TaxBenefitRate         float64 `json:"taxBenefitRate" yaml:"taxBenefitRate"`
	InflationRate          float64 `json:"inflationRate" yaml:"inflationRate"`
	OpportunityCostRate    float64 `json:"opportunityCostRate" yaml:"opportunityCostRate"`
}

func (r CompareRequest) params(cfg *config.Config) (calculations.RentVsBuyParams, error) {
	spec, err := loanSpec(cfg, loanFields{
		amount: r.PropertyValue - r.DownPayment, rate: r.InterestRate, years: r.LoanTermYears, paymentType: r.PaymentType,
		amountField: "propertyValue - downPayment", rateField: "interestRate", termField: "loanTermYears",
	})
	if err != nil {
		return calculations.RentVsBuyParams{}, err
	}

	var c validators.Collector
	c.Add(validators.CheckPrincipal(cfg, "propertyValue", r.PropertyValue))
	c.Add(validators.CheckAmount(cfg, "downPayment", r.DownPayment))
	c.Add(validators.CheckAmount(cfg, "monthlyRent", r.MonthlyRent))
	c.Add(validators.CheckAmount(cfg, "rentalIncome", r.RentalIncome))
	c.Add(validators.CheckRate(cfg, "maintenanceCostPercent", r.MaintenanceCostPercent))
	c.Add(validators.CheckRate(cfg, "propertyTaxPercent", r.PropertyTaxPercent))
	c.Add(validators.CheckRate(cfg, "taxBenefitRate", r.TaxBenefitRate))
	c.Add(validators.CheckGrowthRate(cfg, "rentGrowthRate", r.RentGrowthRate))
	c.Add(validators.CheckGrowthRate(cfg, "propertyGrowthRate", r.PropertyGrowthRate))
	c.Add(validators.CheckGrowthRate(cfg, "inflationRate", r.InflationRate))
	c.Add(validators.CheckGrowthRate(cfg, "opportunityCostRate", r.OpportunityCostRate))
	if err := c.Err(calculations.ErrInvalidScenarioParameter); err != nil {
		return calculations.RentVsBuyParams{}, err
	}

	return calculations.RentVsBuyParams{
		PropertyValue:             r.PropertyValue,
		DownPayment:               r.DownPayment,
		InterestRatePercent:       spec.AnnualRatePercent,
		TermMonths:                spec.TermMonths,
		PaymentType:               spec.PaymentType,
		MonthlyRent:               r.MonthlyRent,
		RentGrowthRatePercent:     r.RentGrowthRate,
		PropertyGrowthRatePercent: r.PropertyGrowthRate,
		MaintenanceCostPercent:    r.MaintenanceCostPercent,
		PropertyTaxPercent:        r.PropertyTaxPercent,
		RentalIncome:              r.RentalIncome,
		TaxBenefitRatePercent:     r.TaxBenefitRate,
		InflationRatePercent:      r.InflationRate,
		OpportunityCostPercent:    r.OpportunityCostRate,
	}, nil
}

// CurrencyRequest - запрос графика в нескольких валютах
type CurrencyRequest struct {
	LoanAmount           float64                       `json:"loanAmount" yaml:"loanAmount"`
	InterestRate         float64                       `json:"interestRate" yaml:"interestRate"`
	LoanTermYears        float64                       `json:"loanTermYears" yaml:"loanTermYears"`
	PaymentType          string                        `json:"paymentType" yaml:"paymentType"`
	BaseCurrency         string                        `json:"baseCurrency" yaml:"baseCurrency"`
	TargetCurrencies     []string                      `json:"targetCurrencies" yaml:"targetCurrencies"`
	ExchangeRates        map[string]map[string]float64 `json:"exchangeRates,omitempty" yaml:"exchangeRates"`
	CurrencyAnnualChange map[string]map[string]float64 `json:"currencyAnnualChange,omitempty" yaml:"currencyAnnualChange"`
}

func (r CurrencyRequest) params(cfg *config.Config) (calculations.CurrencyParams, error) {
	spec, err := loanSpec(cfg, loanFields{
		amount: r.LoanAmount, rate: r.InterestRate, years: r.LoanTermYears, paymentType: r.PaymentType,
		rateField: "interestRate", termField: "loanTermYears",
	})
	if err != nil {
		return calculations.CurrencyParams{}, err
	}

	var c validators.Collector
	c.Add(validators.CheckCurrencyCode("baseCurrency", strings.TrimSpace(r.BaseCurrency)))
	if len(r.TargetCurrencies) == 0 {
		c.Add(fmt.Errorf("targetCurrencies: укажите хотя бы одну валюту"))
	}
	for _, code := range r.TargetCurrencies {
		c.Add(validators.CheckCurrencyCode("targetCurrencies", strings.TrimSpace(code)))
	}
	if err := c.Err(calculations.ErrInvalidScenarioParameter); err != nil {
		return calculations.CurrencyParams{}, err
	}

	return calculations.CurrencyParams{
		Loan:             spec,
		BaseCurrency:     r.BaseCurrency,
		TargetCurrencies: r.TargetCurrencies,
		ExchangeRates:    r.ExchangeRates,
		AnnualChange:     r.CurrencyAnnualChange,
	}, nil
}

// EarlyRepaymentRequest - запрос сценария досрочного погашения
type EarlyRepaymentRequest struct {
	LoanAmount    float64                     `json:"loanAmount" yaml:"loanAmount"`
	InterestRate  float64                     `json:"interestRate" yaml:"interestRate"`
	LoanTermYears float64                     `json:"loanTermYears" yaml:"loanTermYears"`
	PaymentType   string                      `json:"paymentType" yaml:"paymentType"`
	EarlyPayments []calculations.EarlyPayment `json:"earlyPayments" yaml:"earlyPayments"`
}

type earlyRepaymentParams struct {
	spec     calculations.LoanSpec
	payments []calculations.EarlyPayment
}

func (r EarlyRepaymentRequest) params(cfg *config.Config) (earlyRepaymentParams, error) {
	spec, err := loanSpec(cfg, loanFields{
		amount: r.LoanAmount, rate: r.InterestRate, years: r.LoanTermYears, paymentType: r.PaymentType,
		rateField: "interestRate", termField: "loanTermYears",
	})
	if err != nil {
		return earlyRepaymentParams{}, err
	}

	var c validators.Collector
	c.Add(validators.CheckEarlyPaymentsCount(cfg, len(r.EarlyPayments)))
	payments := make([]calculations.EarlyPayment, 0, len(r.EarlyPayments))
	for i, p := range r.EarlyPayments {
		c.Add(validators.CheckPrincipal(cfg, fmt.Sprintf("earlyPayments[%d].amount", i), p.Amount))
		p.Effect = calculations.EarlyPaymentEffect(strings.ToLower(strings.TrimSpace(string(p.Effect))))
		payments = append(payments, p)
	}
	if err := c.Err(calculations.ErrInvalidEarlyPayment); err != nil {
		return earlyRepaymentParams{}, err
	}
	if err := calculations.ValidateEarlyPayments(payments, spec.TermMonths); err != nil {
		return earlyRepaymentParams{}, err
	}
	return earlyRepaymentParams{spec: spec, payments: payments}, nil
}

// RestructuringRequest - запрос сценария реструктуризации
type RestructuringRequest struct {
	LoanAmount           float64  `json:"loanAmount" yaml:"loanAmount"`
	OriginalInterestRate float64  `json:"originalInterestRate" yaml:"originalInterestRate"`
	OriginalTermYears    float64  `json:"originalTermYears" yaml:"originalTermYears"`
	PaymentType          string   `json:"paymentType" yaml:"paymentType"`
	MonthsPaid           int      `json:"monthsPaid" yaml:"monthsPaid"`
	NewInterestRate      *float64 `json:"newInterestRate,omitempty" yaml:"newInterestRate"`
	NewTermYears         *float64 `json:"newTermYears,omitempty" yaml:"newTermYears"`
}

type restructuringParams struct {
	spec  calculations.LoanSpec
	terms calculations.RestructuringTerms
}

func (r RestructuringRequest) params(cfg *config.Config) (restructuringParams, error) {
	spec, err := loanSpec(cfg, loanFields{
		amount: r.LoanAmount, rate: r.OriginalInterestRate, years: r.OriginalTermYears, paymentType: r.PaymentType,
		rateField: "originalInterestRate", termField: "originalTermYears",
	})
	if err != nil {
		return restructuringParams{}, err
	}

	terms := calculations.RestructuringTerms{MonthsPaid: r.MonthsPaid}
	var c validators.Collector
	c.Add(validators.ValidateIntRange("monthsPaid", r.MonthsPaid, 0, spec.TermMonths-1))
	if r.NewInterestRate != nil {
		c.Add(validators.CheckRate(cfg, "newInterestRate", *r.NewInterestRate))
		terms.NewAnnualRatePercent = r.NewInterestRate
	}
	if r.NewTermYears != nil {
		months, err := validators.CheckTermYears(cfg, "newTermYears", *r.NewTermYears)
		c.Add(err)
		terms.NewTermMonths = &months
	}
	if err := c.Err(calculations.ErrInvalidScenarioParameter); err != nil {
		return restructuringParams{}, err
	}
	return restructuringParams{spec: spec, terms: terms}, nil
}

// InsuranceRequest - запрос сценария со страхованием
type InsuranceRequest struct {
	LoanAmount         float64  `json:"loanAmount" yaml:"loanAmount"`
	InterestRate       float64  `json:"interestRate" yaml:"interestRate"`
	LoanTermYears      float64  `json:"loanTermYears" yaml:"loanTermYears"`
	PaymentType        string   `json:"paymentType" yaml:"paymentType"`
	InsuranceRate      float64  `json:"insuranceRate" yaml:"insuranceRate"`
	InsuranceTermYears *float64 `json:"insuranceTermYears,omitempty" yaml:"insuranceTermYears"`
}

type insuranceParams struct {
	spec       calculations.LoanSpec
	rate       float64
	termMonths int
}

func (r InsuranceRequest) params(cfg *config.Config) (insuranceParams, error) {
	spec, err := loanSpec(cfg, loanFields{
		amount: r.LoanAmount, rate: r.InterestRate, years: r.LoanTermYears, paymentType: r.PaymentType,
		rateField: "interestRate", termField: "loanTermYears",
	})
	if err != nil {
		return insuranceParams{}, err
	}

	p := insuranceParams{spec: spec, rate: r.InsuranceRate, termMonths: spec.TermMonths}
	var c validators.Collector
	c.Add(validators.CheckRate(cfg, "insuranceRate", r.InsuranceRate))
	if r.InsuranceTermYears != nil {
		years := *r.InsuranceTermYears
		if !utils.IsFinite(years) || years < 0 {
			c.Add(fmt.Errorf("insuranceTermYears: срок не может быть отрицательным"))
		}
		p.termMonths = validators.TermYearsToMonths(years)
		if p.termMonths > spec.TermMonths {
			c.Add(fmt.Errorf("insuranceTermYears: срок страхования больше срока кредита"))
		}
	}
	if err := c.Err(calculations.ErrInvalidScenarioParameter); err != nil {
		return insuranceParams{}, err
	}
	return p, nil
}

// CentralBankRequest - запрос сценария с привязкой к ключевой ставке
type CentralBankRequest struct {
	LoanAmount       float64                        `json:"loanAmount" yaml:"loanAmount"`
	BaseInterestRate float64                        `json:"baseInterestRate" yaml:"baseInterestRate"`
	LoanTermYears    float64                        `json:"loanTermYears" yaml:"loanTermYears"`
	PaymentType      string                         `json:"paymentType" yaml:"paymentType"`
	CentralBankRate  float64                        `json:"centralBankRate" yaml:"centralBankRate"`
	Margin           float64                        `json:"margin" yaml:"margin"`
	PredictedCbRates []calculations.RateChangePoint `json:"predictedCbRates" yaml:"predictedCbRates"`
}

func (r CentralBankRequest) params(cfg *config.Config) (calculations.CentralBankParams, error) {
	spec, err := loanSpec(cfg, loanFields{
		amount: r.LoanAmount, rate: r.BaseInterestRate, years: r.LoanTermYears, paymentType: r.PaymentType,
		rateField: "baseInterestRate", termField: "loanTermYears",
	})
	if err != nil {
		return calculations.CentralBankParams{}, err
	}

	var c validators.Collector
	c.Add(validators.CheckRate(cfg, "centralBankRate", r.CentralBankRate))
	c.Add(validators.ValidatePositiveNumber("margin", r.Margin, -cfg.MaxRate, cfg.MaxRate))
	for i, p := range r.PredictedCbRates {
		c.Add(validators.ValidateIntRange(fmt.Sprintf("predictedCbRates[%d].month", i), p.Month, 1, spec.TermMonths))
		c.Add(validators.CheckRate(cfg, fmt.Sprintf("predictedCbRates[%d].rate", i), p.AnnualRatePercent))
	}
	if err := c.Err(calculations.ErrInvalidScenarioParameter); err != nil {
		return calculations.CentralBankParams{}, err
	}

	return calculations.CentralBankParams{
		Loan:             spec,
		CentralBankRate:  r.CentralBankRate,
		Margin:           r.Margin,
		PredictedCbRates: r.PredictedCbRates,
	}, nil
}

type loanFields struct {
	amount      float64
	rate        float64
	years       float64
	paymentType string

	amountField string
	rateField   string
	termField   string
}

// loanSpec проверяет общие параметры кредита и собирает LoanSpec
func loanSpec(cfg *config.Config, f loanFields) (calculations.LoanSpec, error) {
	if f.amountField == "" {
		f.amountField = "loanAmount"
	}

	var c validators.Collector
	c.Add(validators.CheckPrincipal(cfg, f.amountField, f.amount))
	c.Add(validators.CheckRate(cfg, f.rateField, f.rate))
	months, err := validators.CheckTermYears(cfg, f.termField, f.years)
	c.Add(err)

	paymentType := calculations.PaymentType(strings.ToLower(strings.TrimSpace(f.paymentType)))
	switch paymentType {
	case "":
		paymentType = calculations.PaymentAnnuity
	case calculations.PaymentAnnuity, calculations.PaymentDifferentiated:
	default:
		c.Add(fmt.Errorf("paymentType: неизвестный тип %q", f.paymentType))
	}

	if err := c.Err(calculations.ErrInvalidLoanSpec); err != nil {
		return calculations.LoanSpec{}, err
	}
	return calculations.LoanSpec{
		Principal:         f.amount,
		AnnualRatePercent: f.rate,
		TermMonths:        months,
		PaymentType:       paymentType,
	}, nil
}
