package calculations

import (
	"errors"
	"testing"
)

func TestWithInsurance(t *testing.T) {
	spec := LoanSpec{Principal: 1000000, AnnualRatePercent: 12, TermMonths: 12}

	tests := []struct {
		name          string
		rate          float64
		term          int
		wantMonthly   float64
		wantTotal     float64
		wantCoveredTo int
	}{
		{"half term", 1, 6, 833.33, 4999.98, 6},
		{"full term", 1, 12, 833.33, 9999.96, 12},
		{"no coverage", 1, 0, 833.33, 0, 0},
		{"zero rate", 0, 12, 0, 0, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := WithInsurance(spec, tt.rate, tt.term)
			if err != nil {
				t.Fatalf("WithInsurance() error = %v", err)
			}
			if r.MonthlyInsurance != tt.wantMonthly {
				t.Errorf("monthly insurance = %f, want %f", r.MonthlyInsurance, tt.wantMonthly)
			}
			if r.TotalInsurance != tt.wantTotal {
				t.Errorf("total insurance = %f, want %f", r.TotalInsurance, tt.wantTotal)
			}
			if !almostEqual(r.IncreaseTotalPayments, tt.wantTotal, 0.01) {
				t.Errorf("increase = %f, want %f", r.IncreaseTotalPayments, tt.wantTotal)
			}
			for _, e := range r.InsuranceSchedule {
				covered := e.Month <= tt.wantCoveredTo
				if covered && e.Insurance != tt.wantMonthly {
					t.Errorf("month %d: insurance %f, want %f", e.Month, e.Insurance, tt.wantMonthly)
				}
				if !covered && e.Insurance != 0 {
					t.Errorf("month %d: insurance should be 0, got %f", e.Month, e.Insurance)
				}
				if !almostEqual(e.TotalPayment, e.Payment+e.Insurance, 0.005) {
					t.Errorf("month %d: total payment %f != %f + %f", e.Month, e.TotalPayment, e.Payment, e.Insurance)
				}
			}
		})
	}
}

func TestWithInsuranceInvalid(t *testing.T) {
	spec := LoanSpec{Principal: 1000000, AnnualRatePercent: 12, TermMonths: 12}
	if _, err := WithInsurance(spec, 1, 13); !errors.Is(err, ErrInvalidScenarioParameter) {
		t.Errorf("expected ErrInvalidScenarioParameter for term beyond loan, got %v", err)
	}
	if _, err := WithInsurance(spec, -0.5, 12); !errors.Is(err, ErrInvalidScenarioParameter) {
		t.Errorf("expected ErrInvalidScenarioParameter for negative rate, got %v", err)
	}
}
