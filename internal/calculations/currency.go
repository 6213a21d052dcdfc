package calculations

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"github.com/cloud-ru/mortgage-engine-go/pkg/utils"
)

// DefaultExchangeRates - справочные курсы [из][в], используемые, если курс не передан в запросе
var DefaultExchangeRates = map[string]map[string]float64{
	"USD": {"EUR": 0.85, "RUB": 73.5, "JPY": 110.0},
	"EUR": {"USD": 1.18, "RUB": 86.5, "JPY": 130.0},
	"RUB": {"USD": 0.0136, "EUR": 0.0116, "JPY": 1.5},
	"JPY": {"USD": 0.0091, "EUR": 0.0077, "RUB": 0.67},
}

// CurrencyParams - параметры пересчета графика в несколько валют.
// ExchangeRates и AnnualChange задаются матрицами [из][в]; изменение курса -
// в процентах в год, независимо для каждого направления.
type CurrencyParams struct {
	Loan             LoanSpec
	BaseCurrency     string
	TargetCurrencies []string
	ExchangeRates    map[string]map[string]float64
	AnnualChange     map[string]map[string]float64
}

// CurrencyRatePath - курс базовой валюты к целевой, меняющийся с годовым дрейфом
type CurrencyRatePath struct {
	Currency     string
	Spot         float64
	DriftPercent float64
}

// At возвращает курс на месяц m: spot * (1 + drift/100)^(m/12)
func (p CurrencyRatePath) At(month int) float64 {
	if p.DriftPercent == 0 {
		return p.Spot
	}
	return p.Spot * math.Pow(1+p.DriftPercent/100, float64(month)/12)
}

// CurrencyAmounts - платеж месяца в одной валюте
type CurrencyAmounts struct {
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Remaining float64 `json:"remaining"`
	Rate      float64 `json:"rate"`
}

// CurrencyEntry - месяц графика во всех запрошенных валютах
type CurrencyEntry struct {
	Month      int
	Currencies map[string]CurrencyAmounts
}

// MarshalJSON раскладывает валюты в плоские поля payment_USD, rate_USD и т.д.
func (e CurrencyEntry) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, 1+len(e.Currencies)*5)
	flat["month"] = e.Month
	for code, a := range e.Currencies {
		flat["payment_"+code] = a.Payment
		flat["principal_"+code] = a.Principal
		flat["interest_"+code] = a.Interest
		flat["remaining_"+code] = a.Remaining
		flat["rate_"+code] = a.Rate
	}
	return json.Marshal(flat)
}

// CurrencyResult представляет график кредита в нескольких валютах
type CurrencyResult struct {
	BaseCurrency     string             `json:"baseCurrency"`
	Currencies       []string           `json:"currencies"`
	CurrencyAnalysis []CurrencyEntry    `json:"currencyAnalysis"`
	TotalInterest    map[string]float64 `json:"totalInterest"`
	TotalPayments    map[string]float64 `json:"totalPayments"`
}

// NormalizeCurrency приводит код валюты к верхнему регистру без пробелов
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// RatePaths строит траектории курсов для каждой целевой валюты.
// Для базовой валюты курс равен 1. Отсутствующий дрейф означает неизменный курс.
func RatePaths(p CurrencyParams) ([]CurrencyRatePath, error) {
	base := NormalizeCurrency(p.BaseCurrency)
	if base == "" {
		return nil, scenarioError("не указана базовая валюта")
	}
	if len(p.TargetCurrencies) == 0 {
		return nil, scenarioError("не указаны целевые валюты")
	}

	seen := make(map[string]bool, len(p.TargetCurrencies))
	paths := make([]CurrencyRatePath, 0, len(p.TargetCurrencies))
	for _, raw := range p.TargetCurrencies {
		code := NormalizeCurrency(raw)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true

		if code == base {
			paths = append(paths, CurrencyRatePath{Currency: code, Spot: 1})
			continue
		}
		spot, ok := lookupMatrix(p.ExchangeRates, base, code)
		if !ok {
			spot, ok = lookupMatrix(DefaultExchangeRates, base, code)
		}
		if !ok {
			return nil, scenarioError("нет курса %s/%s", base, code)
		}
		if !utils.IsFinite(spot) || spot <= 0 {
			return nil, scenarioError("курс %s/%s должен быть положительным", base, code)
		}
		drift, _ := lookupMatrix(p.AnnualChange, base, code)
		if !utils.IsFinite(drift) || drift <= -100 {
			return nil, scenarioError("изменение курса %s/%s должно быть больше -100%%", base, code)
		}
		paths = append(paths, CurrencyRatePath{Currency: code, Spot: spot, DriftPercent: drift})
	}
	return paths, nil
}

func lookupMatrix(matrix map[string]map[string]float64, from, to string) (float64, bool) {
	for k, row := range matrix {
		if NormalizeCurrency(k) != from {
			continue
		}
		for c, v := range row {
			if NormalizeCurrency(c) == to {
				return v, true
			}
		}
	}
	return 0, false
}

// ProjectCurrencies выражает платежи кредита в нескольких валютах с учетом
// прогнозного изменения курсов
func ProjectCurrencies(p CurrencyParams) (*CurrencyResult, error) {
	base, err := GenerateSchedule(p.Loan)
	if err != nil {
		return nil, err
	}
	paths, err := RatePaths(p)
	if err != nil {
		return nil, err
	}

	rawInterest := make(map[string]float64, len(paths))
	rawPayments := make(map[string]float64, len(paths))
	entries := make([]CurrencyEntry, 0, len(base.Schedule))
	for _, row := range base.Schedule {
		entry := CurrencyEntry{Month: row.Month, Currencies: make(map[string]CurrencyAmounts, len(paths))}
		for _, path := range paths {
			rate := path.At(row.Month)
			if !utils.IsFinite(rate) {
				return nil, computationError("месяц %d: курс %s не является конечным числом", row.Month, path.Currency)
			}
			entry.Currencies[path.Currency] = CurrencyAmounts{
				Payment:   utils.Round2(row.Payment * rate),
				Principal: utils.Round2(row.Principal * rate),
				Interest:  utils.Round2(row.Interest * rate),
				Remaining: utils.Round2(row.RemainingLoan * rate),
				Rate:      rate,
			}
			rawInterest[path.Currency] += row.Interest * rate
			rawPayments[path.Currency] += row.Payment * rate
		}
		entries = append(entries, entry)
	}

	codes := make([]string, 0, len(paths))
	totalInterest := make(map[string]float64, len(paths))
	totalPayments := make(map[string]float64, len(paths))
	for _, path := range paths {
		codes = append(codes, path.Currency)
		totalInterest[path.Currency] = utils.Round2(rawInterest[path.Currency])
		totalPayments[path.Currency] = utils.Round2(rawPayments[path.Currency])
	}
	sort.Strings(codes)

	return &CurrencyResult{
		BaseCurrency:     NormalizeCurrency(p.BaseCurrency),
		Currencies:       codes,
		CurrencyAnalysis: entries,
		TotalInterest:    totalInterest,
		TotalPayments:    totalPayments,
	}, nil
}
