package calculations

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestProjectCurrencies(t *testing.T) {
	loan := LoanSpec{Principal: 1000000, AnnualRatePercent: 12, TermMonths: 12}

	r, err := ProjectCurrencies(CurrencyParams{
		Loan:             loan,
		BaseCurrency:     "rub",
		TargetCurrencies: []string{"RUB", "usd", "USD"},
	})
	if err != nil {
		t.Fatalf("ProjectCurrencies() error = %v", err)
	}
	if len(r.Currencies) != 2 || r.Currencies[0] != "RUB" || r.Currencies[1] != "USD" {
		t.Fatalf("unexpected currencies %v", r.Currencies)
	}

	base, _ := GenerateSchedule(loan)
	if r.TotalPayments["RUB"] != base.TotalPayments || r.TotalInterest["RUB"] != base.TotalInterest {
		t.Errorf("base currency totals differ: %v vs %f", r.TotalPayments, base.TotalPayments)
	}
	first := r.CurrencyAnalysis[0].Currencies["USD"]
	if first.Rate != 0.0136 || first.Payment != 1208.34 {
		t.Errorf("unexpected USD month 1: %+v", first)
	}
	for _, e := range r.CurrencyAnalysis {
		if e.Currencies["USD"].Rate != 0.0136 {
			t.Fatalf("month %d: rate should stay constant without drift", e.Month)
		}
	}
}

func TestProjectCurrenciesDrift(t *testing.T) {
	loan := LoanSpec{Principal: 1000000, AnnualRatePercent: 12, TermMonths: 12}
	r, err := ProjectCurrencies(CurrencyParams{
		Loan:             loan,
		BaseCurrency:     "RUB",
		TargetCurrencies: []string{"USD", "CNY"},
		ExchangeRates:    map[string]map[string]float64{"RUB": {"CNY": 0.08}},
		AnnualChange:     map[string]map[string]float64{"RUB": {"USD": 10}},
	})
	if err != nil {
		t.Fatalf("ProjectCurrencies() error = %v", err)
	}
	last := r.CurrencyAnalysis[11]
	if usd := last.Currencies["USD"]; !almostEqual(usd.Rate, 0.0136*1.1, 1e-12) || usd.Payment != 1329.18 {
		t.Errorf("unexpected USD month 12: %+v", usd)
	}
	if cny := last.Currencies["CNY"]; cny.Rate != 0.08 {
		t.Errorf("expected explicit CNY rate 0.08, got %f", cny.Rate)
	}
}

func TestProjectCurrenciesInvalid(t *testing.T) {
	loan := LoanSpec{Principal: 1000000, AnnualRatePercent: 12, TermMonths: 12}
	tests := []struct {
		name   string
		params CurrencyParams
	}{
		{"unknown pair", CurrencyParams{Loan: loan, BaseCurrency: "RUB", TargetCurrencies: []string{"XYZ"}}},
		{"no targets", CurrencyParams{Loan: loan, BaseCurrency: "RUB"}},
		{"no base", CurrencyParams{Loan: loan, TargetCurrencies: []string{"USD"}}},
		{"collapsing drift", CurrencyParams{
			Loan:             loan,
			BaseCurrency:     "RUB",
			TargetCurrencies: []string{"USD"},
			AnnualChange:     map[string]map[string]float64{"RUB": {"USD": -100}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ProjectCurrencies(tt.params); !errors.Is(err, ErrInvalidScenarioParameter) {
				t.Errorf("expected ErrInvalidScenarioParameter, got %v", err)
			}
		})
	}
}

func TestCurrencyEntryMarshalJSON(t *testing.T) {
	entry := CurrencyEntry{
		Month: 3,
		Currencies: map[string]CurrencyAmounts{
			"USD": {Payment: 10, Principal: 8, Interest: 2, Remaining: 90, Rate: 0.0136},
		},
	}
	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var flat map[string]float64
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if flat["month"] != 3 || flat["payment_USD"] != 10 || flat["rate_USD"] != 0.0136 || flat["remaining_USD"] != 90 {
		t.Errorf("unexpected flattened entry %s", data)
	}
}
