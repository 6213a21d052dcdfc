package calculations

import (
	"errors"
	"testing"
)

func TestRatePathAt(t *testing.T) {
	path := NewRatePath(10, []RateChangePoint{
		{Month: 12, AnnualRatePercent: 8},
		{Month: 6, AnnualRatePercent: 9},
		{Month: 12, AnnualRatePercent: 7},
	})

	tests := []struct {
		month int
		want  float64
	}{
		{1, 10},
		{5, 10},
		{6, 9},
		{11, 9},
		{12, 7},
		{100, 7},
	}
	for _, tt := range tests {
		if got := path.At(tt.month); got != tt.want {
			t.Errorf("At(%d) = %f, want %f", tt.month, got, tt.want)
		}
	}
	if !path.changesAt(6) || path.changesAt(7) {
		t.Error("changesAt reports wrong months")
	}
}

func TestFloatingSchedule(t *testing.T) {
	spec := LoanSpec{Principal: 1000000, AnnualRatePercent: 12, TermMonths: 12, PaymentType: PaymentAnnuity}

	t.Run("constant path matches fixed schedule", func(t *testing.T) {
		floating, err := FloatingSchedule(spec, NewRatePath(12, nil))
		if err != nil {
			t.Fatalf("FloatingSchedule() error = %v", err)
		}
		fixed, _ := GenerateSchedule(spec)
		for i := range fixed.Schedule {
			if floating[i] != fixed.Schedule[i] {
				t.Fatalf("month %d: %+v != %+v", i+1, floating[i], fixed.Schedule[i])
			}
		}
	})

	t.Run("annuity is reamortized on change", func(t *testing.T) {
		floating, err := FloatingSchedule(spec, NewRatePath(12, []RateChangePoint{{Month: 7, AnnualRatePercent: 6}}))
		if err != nil {
			t.Fatalf("FloatingSchedule() error = %v", err)
		}
		if floating[5].Payment != 88848.79 {
			t.Errorf("month 6 payment = %f, want 88848.79", floating[5].Payment)
		}
		if !almostEqual(floating[6].Payment, 87328.27, 0.01) {
			t.Errorf("month 7 payment = %f, want ~87328.27", floating[6].Payment)
		}
		if floating[11].RemainingLoan != 0 {
			t.Errorf("expected zero final balance, got %f", floating[11].RemainingLoan)
		}
	})

	t.Run("differentiated keeps principal step", func(t *testing.T) {
		diff := spec
		diff.PaymentType = PaymentDifferentiated
		floating, err := FloatingSchedule(diff, NewRatePath(12, []RateChangePoint{{Month: 4, AnnualRatePercent: 24}}))
		if err != nil {
			t.Fatalf("FloatingSchedule() error = %v", err)
		}
		for _, e := range floating[:11] {
			if !almostEqual(e.Principal, 83333.33, 0.01) {
				t.Errorf("month %d: principal %f, want ~83333.33", e.Month, e.Principal)
			}
		}
		// остаток после 3 месяцев 749999.98, ставка 2% в месяц
		if floating[3].Interest != 15000 {
			t.Errorf("month 4 interest = %f, want 15000", floating[3].Interest)
		}
	})

	t.Run("negative rate rejected", func(t *testing.T) {
		_, err := FloatingSchedule(spec, NewRatePath(12, []RateChangePoint{{Month: 3, AnnualRatePercent: -1}}))
		if !errors.Is(err, ErrInvalidScenarioParameter) {
			t.Errorf("expected ErrInvalidScenarioParameter, got %v", err)
		}
	})
}

func TestCentralBankRate(t *testing.T) {
	loan := LoanSpec{Principal: 1000000, AnnualRatePercent: 12, TermMonths: 12}

	t.Run("flat key rate equals fixed", func(t *testing.T) {
		r, err := CentralBankRate(CentralBankParams{Loan: loan, CentralBankRate: 10, Margin: 2})
		if err != nil {
			t.Fatalf("CentralBankRate() error = %v", err)
		}
		if r.PaymentDifference != 0 || r.InterestDifference != 0 {
			t.Errorf("expected no difference, got %f/%f", r.PaymentDifference, r.InterestDifference)
		}
		if r.CbSchedule[0].CbRate != 10 || r.CbSchedule[0].InterestRate != 12 {
			t.Errorf("unexpected rates %+v", r.CbSchedule[0])
		}
	})

	t.Run("falling key rate saves interest", func(t *testing.T) {
		r, err := CentralBankRate(CentralBankParams{
			Loan:             loan,
			CentralBankRate:  10,
			Margin:           2,
			PredictedCbRates: []RateChangePoint{{Month: 7, AnnualRatePercent: 4}},
		})
		if err != nil {
			t.Fatalf("CentralBankRate() error = %v", err)
		}
		if r.CbSchedule[6].CbRate != 4 || r.CbSchedule[6].InterestRate != 6 {
			t.Errorf("unexpected rates at month 7: %+v", r.CbSchedule[6])
		}
		if !almostEqual(r.CbSchedule[6].Payment, 87328.27, 0.01) {
			t.Errorf("month 7 payment = %f, want ~87328.27", r.CbSchedule[6].Payment)
		}
		if r.InterestDifference >= 0 {
			t.Errorf("expected negative interest difference, got %f", r.InterestDifference)
		}
	})

	t.Run("prediction outside term", func(t *testing.T) {
		_, err := CentralBankRate(CentralBankParams{
			Loan:             loan,
			CentralBankRate:  10,
			PredictedCbRates: []RateChangePoint{{Month: 13, AnnualRatePercent: 4}},
		})
		if !errors.Is(err, ErrInvalidScenarioParameter) {
			t.Errorf("expected ErrInvalidScenarioParameter, got %v", err)
		}
	})
}
