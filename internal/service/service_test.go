package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloud-ru/mortgage-engine-go/internal/calculations"
	"github.com/cloud-ru/mortgage-engine-go/internal/config"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

func newTestEngine() *Engine {
	return New(config.Default(), noop.NewTracerProvider().Tracer("test"), zap.NewNop())
}

func floatPtr(v float64) *float64 { return &v }

func TestEngineCalculate(t *testing.T) {
	engine := newTestEngine()
	ctx := WithRequestID(context.Background(), "test-id")

	tests := []struct {
		name        string
		req         CalculateRequest
		wantErr     error
		checkResult func(*testing.T, *calculations.CalculationResult)
	}{
		{
			name: "annuity by default",
			req:  CalculateRequest{LoanAmount: 1000000, InterestRate: 12, LoanTermYears: 1},
			checkResult: func(t *testing.T, r *calculations.CalculationResult) {
				if r.PaymentType != calculations.PaymentAnnuity || len(r.Schedule) != 12 {
					t.Errorf("unexpected result %s/%d", r.PaymentType, len(r.Schedule))
				}
				if r.MonthlyPayment != 88848.79 {
					t.Errorf("monthly payment = %f, want 88848.79", r.MonthlyPayment)
				}
			},
		},
		{
			name: "differentiated upper case",
			req:  CalculateRequest{LoanAmount: 1000000, InterestRate: 12, LoanTermYears: 1, PaymentType: "Differentiated"},
			checkResult: func(t *testing.T, r *calculations.CalculationResult) {
				if r.FirstPayment != 93333.34 {
					t.Errorf("first payment = %f, want 93333.34", r.FirstPayment)
				}
			},
		},
		{
			name:    "negative amount",
			req:     CalculateRequest{LoanAmount: -1, InterestRate: 12, LoanTermYears: 1},
			wantErr: calculations.ErrInvalidLoanSpec,
		},
		{
			name:    "term beyond limit",
			req:     CalculateRequest{LoanAmount: 1000, InterestRate: 12, LoanTermYears: 60},
			wantErr: calculations.ErrInvalidLoanSpec,
		},
		{
			name:    "unknown payment type",
			req:     CalculateRequest{LoanAmount: 1000, InterestRate: 12, LoanTermYears: 1, PaymentType: "bullet"},
			wantErr: calculations.ErrInvalidLoanSpec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Calculate(ctx, tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if !IsValidationError(err) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			tt.checkResult(t, result)
		})
	}
}

func TestEngineValidationCollectsAllFields(t *testing.T) {
	engine := newTestEngine()
	_, err := engine.Calculate(context.Background(), CalculateRequest{LoanAmount: 0, InterestRate: -5, LoanTermYears: 0})
	if !errors.Is(err, calculations.ErrInvalidLoanSpec) {
		t.Fatalf("expected ErrInvalidLoanSpec, got %v", err)
	}
	for _, field := range []string{"loanAmount", "interestRate", "loanTermYears"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestEngineScenarios(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	t.Run("early repayment", func(t *testing.T) {
		r, err := engine.EarlyRepayment(ctx, EarlyRepaymentRequest{
			LoanAmount:    1000000,
			InterestRate:  12,
			LoanTermYears: 1,
			EarlyPayments: []calculations.EarlyPayment{{Month: 3, Amount: 200000, Effect: "REDUCE_TERM"}},
		})
		if err != nil {
			t.Fatalf("EarlyRepayment() error = %v", err)
		}
		if r.MonthsSaved != 2 {
			t.Errorf("months saved = %d, want 2", r.MonthsSaved)
		}
	})

	t.Run("early repayment outside term", func(t *testing.T) {
		_, err := engine.EarlyRepayment(ctx, EarlyRepaymentRequest{
			LoanAmount:    1000000,
			InterestRate:  12,
			LoanTermYears: 1,
			EarlyPayments: []calculations.EarlyPayment{{Month: 13, Amount: 1000}},
		})
		if !errors.Is(err, calculations.ErrInvalidEarlyPayment) {
			t.Errorf("expected ErrInvalidEarlyPayment, got %v", err)
		}
	})

	t.Run("restructuring", func(t *testing.T) {
		r, err := engine.Restructuring(ctx, RestructuringRequest{
			LoanAmount:           1000000,
			OriginalInterestRate: 12,
			OriginalTermYears:    1,
			MonthsPaid:           6,
			NewInterestRate:      floatPtr(6),
		})
		if err != nil {
			t.Fatalf("Restructuring() error = %v", err)
		}
		if r.RemainingBalance != 514921.06 {
			t.Errorf("remaining balance = %f, want 514921.06", r.RemainingBalance)
		}
	})

	t.Run("restructuring months paid equals term", func(t *testing.T) {
		_, err := engine.Restructuring(ctx, RestructuringRequest{
			LoanAmount: 1000000, OriginalInterestRate: 12, OriginalTermYears: 1, MonthsPaid: 12,
		})
		if !errors.Is(err, calculations.ErrInvalidScenarioParameter) {
			t.Errorf("expected ErrInvalidScenarioParameter, got %v", err)
		}
	})

	t.Run("insurance defaults to loan term", func(t *testing.T) {
		r, err := engine.Insurance(ctx, InsuranceRequest{LoanAmount: 1000000, InterestRate: 12, LoanTermYears: 1, InsuranceRate: 1})
		if err != nil {
			t.Fatalf("Insurance() error = %v", err)
		}
		if r.InsuranceTermMonths != 12 || r.TotalInsurance != 9999.96 {
			t.Errorf("unexpected insurance %d/%f", r.InsuranceTermMonths, r.TotalInsurance)
		}
	})

	t.Run("insurance longer than loan", func(t *testing.T) {
		_, err := engine.Insurance(ctx, InsuranceRequest{
			LoanAmount: 1000000, InterestRate: 12, LoanTermYears: 1, InsuranceRate: 1, InsuranceTermYears: floatPtr(2),
		})
		if !errors.Is(err, calculations.ErrInvalidScenarioParameter) {
			t.Errorf("expected ErrInvalidScenarioParameter, got %v", err)
		}
	})

	t.Run("central bank rate", func(t *testing.T) {
		r, err := engine.CentralBankRate(ctx, CentralBankRequest{
			LoanAmount:       1000000,
			BaseInterestRate: 12,
			LoanTermYears:    1,
			CentralBankRate:  10,
			Margin:           2,
			PredictedCbRates: []calculations.RateChangePoint{{Month: 7, AnnualRatePercent: 4}},
		})
		if err != nil {
			t.Fatalf("CentralBankRate() error = %v", err)
		}
		if r.InterestDifference >= 0 {
			t.Errorf("expected savings with falling key rate, got %f", r.InterestDifference)
		}
	})

	t.Run("forecast ml", func(t *testing.T) {
		r, err := engine.Forecast(ctx, ForecastRequest{InitialValue: 1000000, GrowthRate: 12, Years: 1, Model: "ML"})
		if err != nil {
			t.Fatalf("Forecast() error = %v", err)
		}
		if r.Model != calculations.ModelExponential {
			t.Errorf("model = %s, want exponential", r.Model)
		}
	})

	t.Run("forecast unknown model", func(t *testing.T) {
		_, err := engine.Forecast(ctx, ForecastRequest{InitialValue: 1000000, GrowthRate: 12, Years: 1, Model: "arima"})
		if !errors.Is(err, calculations.ErrInvalidScenarioParameter) {
			t.Errorf("expected ErrInvalidScenarioParameter, got %v", err)
		}
	})

	t.Run("compare", func(t *testing.T) {
		r, err := engine.Compare(ctx, CompareRequest{
			PropertyValue: 10000000, DownPayment: 2000000, InterestRate: 8, LoanTermYears: 20,
			MonthlyRent: 60000, RentGrowthRate: 5, PropertyGrowthRate: 1,
			MaintenanceCostPercent: 1, PropertyTaxPercent: 0.1, InflationRate: 4, OpportunityCostRate: 7,
		})
		if err != nil {
			t.Fatalf("Compare() error = %v", err)
		}
		if len(r.Comparison) != 240 || r.BreakEvenMonth == nil {
			t.Errorf("unexpected comparison: %d months, break-even %v", len(r.Comparison), r.BreakEvenMonth)
		}
	})

	t.Run("currency", func(t *testing.T) {
		r, err := engine.Currency(ctx, CurrencyRequest{
			LoanAmount: 1000000, InterestRate: 12, LoanTermYears: 1,
			BaseCurrency: "RUB", TargetCurrencies: []string{"USD", "EUR"},
		})
		if err != nil {
			t.Fatalf("Currency() error = %v", err)
		}
		if len(r.Currencies) != 2 || len(r.CurrencyAnalysis) != 12 {
			t.Errorf("unexpected currency result %v/%d", r.Currencies, len(r.CurrencyAnalysis))
		}
	})

	t.Run("currency bad code", func(t *testing.T) {
		_, err := engine.Currency(ctx, CurrencyRequest{
			LoanAmount: 1000000, InterestRate: 12, LoanTermYears: 1,
			BaseCurrency: "RU", TargetCurrencies: []string{"USD"},
		})
		if !errors.Is(err, calculations.ErrInvalidScenarioParameter) {
			t.Errorf("expected ErrInvalidScenarioParameter, got %v", err)
		}
	})

	t.Run("compare types", func(t *testing.T) {
		r, err := engine.ComparePaymentTypes(ctx, CalculateRequest{LoanAmount: 1000000, InterestRate: 12, LoanTermYears: 1})
		if err != nil {
			t.Fatalf("ComparePaymentTypes() error = %v", err)
		}
		if r.CheaperType != string(calculations.PaymentDifferentiated) {
			t.Errorf("cheaper type = %s", r.CheaperType)
		}
	})
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{calculations.ErrInvalidLoanSpec, "invalid_loan_spec"},
		{calculations.ErrInvalidEarlyPayment, "invalid_early_payment"},
		{calculations.ErrInvalidScenarioParameter, "invalid_scenario_parameter"},
		{calculations.ErrComputation, "computation"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		if got := ErrorType(tt.err); got != tt.want {
			t.Errorf("ErrorType(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
