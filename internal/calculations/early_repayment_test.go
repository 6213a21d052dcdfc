package calculations

import (
	"errors"
	"testing"
)

func TestEarlyRepayment(t *testing.T) {
	spec := LoanSpec{Principal: 1000000, AnnualRatePercent: 12, TermMonths: 12, PaymentType: PaymentAnnuity}

	tests := []struct {
		name     string
		spec     LoanSpec
		payments []EarlyPayment
		check    func(*testing.T, *EarlyRepaymentResult)
	}{
		{
			name:     "reduce term",
			spec:     spec,
			payments: []EarlyPayment{{Month: 3, Amount: 200000, Effect: ReduceTerm}},
			check: func(t *testing.T, r *EarlyRepaymentResult) {
				if len(r.EarlySchedule) != 10 {
					t.Fatalf("expected 10 months, got %d", len(r.EarlySchedule))
				}
				if r.MonthsSaved != 2 {
					t.Errorf("expected 2 months saved, got %d", r.MonthsSaved)
				}
				third := r.EarlySchedule[2]
				if third.EarlyPayment != 200000 || third.Payment != 288848.78 {
					t.Errorf("unexpected month 3: %+v", third)
				}
				if r.EarlySchedule[3].Payment != 88848.79 {
					t.Errorf("payment should stay 88848.79, got %f", r.EarlySchedule[3].Payment)
				}
				if !almostEqual(r.TotalInterestEarly, 49128.03, 0.02) {
					t.Errorf("expected interest ~49128.03, got %f", r.TotalInterestEarly)
				}
				if !almostEqual(r.InterestSaved, 17057.42, 0.03) {
					t.Errorf("expected interest saved ~17057.42, got %f", r.InterestSaved)
				}
			},
		},
		{
			name:     "reduce payment",
			spec:     spec,
			payments: []EarlyPayment{{Month: 3, Amount: 200000, Effect: ReducePayment}},
			check: func(t *testing.T, r *EarlyRepaymentResult) {
				if len(r.EarlySchedule) != 12 {
					t.Fatalf("expected 12 months, got %d", len(r.EarlySchedule))
				}
				if r.MonthsSaved != 0 {
					t.Errorf("expected 0 months saved, got %d", r.MonthsSaved)
				}
				if r.EarlySchedule[2].MonthlyPayment != 65500.72 {
					t.Errorf("expected new monthly payment 65500.72, got %f", r.EarlySchedule[2].MonthlyPayment)
				}
				if !almostEqual(r.EarlySchedule[3].Payment, 65500.72, 0.01) {
					t.Errorf("expected month 4 payment 65500.72, got %f", r.EarlySchedule[3].Payment)
				}
				if r.InterestSaved <= 0 {
					t.Error("interest saved should be positive")
				}
			},
		},
		{
			name:     "same month payments are summed",
			spec:     spec,
			payments: []EarlyPayment{{Month: 3, Amount: 150000}, {Month: 3, Amount: 50000}},
			check: func(t *testing.T, r *EarlyRepaymentResult) {
				if r.EarlySchedule[2].EarlyPayment != 200000 {
					t.Errorf("expected combined early payment 200000, got %f", r.EarlySchedule[2].EarlyPayment)
				}
				if len(r.EarlySchedule) != 10 {
					t.Errorf("default effect should reduce term, got %d months", len(r.EarlySchedule))
				}
			},
		},
		{
			name:     "overpayment is capped by balance",
			spec:     LoanSpec{Principal: 1000000, AnnualRatePercent: 12, TermMonths: 12, PaymentType: PaymentDifferentiated},
			payments: []EarlyPayment{{Month: 6, Amount: 2000000, Effect: ReduceTerm}},
			check: func(t *testing.T, r *EarlyRepaymentResult) {
				if len(r.EarlySchedule) != 6 {
					t.Fatalf("expected 6 months, got %d", len(r.EarlySchedule))
				}
				last := r.EarlySchedule[5]
				if last.RemainingLoan != 0 {
					t.Errorf("expected zero balance, got %f", last.RemainingLoan)
				}
				if last.EarlyPayment != 499999.98 {
					t.Errorf("expected capped early payment 499999.98, got %f", last.EarlyPayment)
				}
				if r.TotalInterestEarly != 47500 {
					t.Errorf("expected interest 47500, got %f", r.TotalInterestEarly)
				}
			},
		},
		{
			name:     "no early payments",
			spec:     spec,
			payments: nil,
			check: func(t *testing.T, r *EarlyRepaymentResult) {
				if r.TotalPaymentsEarly != r.TotalPaymentsRegular || r.InterestSaved != 0 {
					t.Errorf("expected identical totals, got %f vs %f", r.TotalPaymentsEarly, r.TotalPaymentsRegular)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EarlyRepayment(tt.spec, tt.payments)
			if err != nil {
				t.Fatalf("EarlyRepayment() error = %v", err)
			}
			tt.check(t, result)
		})
	}
}

func TestValidateEarlyPayments(t *testing.T) {
	tests := []struct {
		name     string
		payments []EarlyPayment
		wantErr  bool
	}{
		{"valid", []EarlyPayment{{Month: 1, Amount: 10}, {Month: 12, Amount: 10, Effect: ReducePayment}}, false},
		{"month zero", []EarlyPayment{{Month: 0, Amount: 10}}, true},
		{"month after term", []EarlyPayment{{Month: 13, Amount: 10}}, true},
		{"zero amount", []EarlyPayment{{Month: 2, Amount: 0}}, true},
		{"unknown effect", []EarlyPayment{{Month: 2, Amount: 10, Effect: "skip"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEarlyPayments(tt.payments, 12)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateEarlyPayments() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidEarlyPayment) {
				t.Errorf("expected ErrInvalidEarlyPayment, got %v", err)
			}
		})
	}
}
