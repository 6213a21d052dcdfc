package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloud-ru/mortgage-engine-go/internal/calculations"
	"github.com/cloud-ru/mortgage-engine-go/internal/config"
	"github.com/cloud-ru/mortgage-engine-go/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Названия операций: используются в спанах, метриках и логах
const (
	OpCalculate       = "calculate"
	OpCompareTypes    = "compare_types"
	OpForecast        = "forecast"
	OpCompare         = "compare"
	OpCurrency        = "currency"
	OpEarlyRepayment  = "early_repayment"
	OpRestructuring   = "restructuring"
	OpInsurance       = "insurance"
	OpCentralBankRate = "central_bank_rate"
)

// Engine проверяет запросы и вызывает расчетное ядро, оборачивая каждый вызов
// в спан, метрики и журнал
type Engine struct {
	cfg    *config.Config
	tracer trace.Tracer
	logger *zap.Logger
}

// New создает Engine
func New(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) *Engine {
	return &Engine{cfg: cfg, tracer: tracer, logger: logger}
}

// Calculate строит график платежей
func (e *Engine) Calculate(ctx context.Context, req CalculateRequest) (*calculations.CalculationResult, error) {
	return observe(ctx, e, OpCalculate,
		[]attribute.KeyValue{
			attribute.Float64("loan_amount", req.LoanAmount),
			attribute.Float64("interest_rate", req.InterestRate),
			attribute.Float64("loan_term_years", req.LoanTermYears),
			attribute.String("payment_type", req.PaymentType),
		},
		func() (calculations.LoanSpec, error) { return req.spec(e.cfg) },
		calculations.GenerateSchedule,
		func(r *calculations.CalculationResult) []attribute.KeyValue {
			metrics.ScheduleMonths.Observe(float64(len(r.Schedule)))
			return []attribute.KeyValue{
				attribute.Int("months", len(r.Schedule)),
				attribute.Float64("total_interest", r.TotalInterest),
				attribute.Float64("total_payments", r.TotalPayments),
			}
		},
	)
}

// ComparePaymentTypes сравнивает аннуитетную и дифференцированную схемы
func (e *Engine) ComparePaymentTypes(ctx context.Context, req CalculateRequest) (*calculations.PaymentTypeComparison, error) {
	return observe(ctx, e, OpCompareTypes,
		[]attribute.KeyValue{
			attribute.Float64("loan_amount", req.LoanAmount),
			attribute.Float64("interest_rate", req.InterestRate),
			attribute.Float64("loan_term_years", req.LoanTermYears),
		},
		func() (calculations.LoanSpec, error) { return req.spec(e.cfg) },
		func(spec calculations.LoanSpec) (*calculations.PaymentTypeComparison, error) {
			return calculations.ComparePaymentTypes(spec.Principal, spec.AnnualRatePercent, spec.TermMonths)
		},
		func(r *calculations.PaymentTypeComparison) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.String("cheaper_type", r.CheaperType),
				attribute.Float64("savings", r.Savings),
			}
		},
	)
}

// Forecast прогнозирует стоимость недвижимости
func (e *Engine) Forecast(ctx context.Context, req ForecastRequest) (*calculations.ForecastResult, error) {
	return observe(ctx, e, OpForecast,
		[]attribute.KeyValue{
			attribute.Float64("initial_value", req.InitialValue),
			attribute.Float64("growth_rate", req.GrowthRate),
			attribute.Float64("years", req.Years),
			attribute.String("model", req.Model),
		},
		func() (calculations.ForecastParams, error) { return req.params(e.cfg) },
		calculations.Project,
		func(r *calculations.ForecastResult) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.String("effective_model", string(r.Model)),
				attribute.Float64("final_nominal_value", r.FinalNominalValue),
			}
		},
	)
}

// Compare сравнивает покупку в ипотеку и аренду
func (e *Engine) Compare(ctx context.Context, req CompareRequest) (*calculations.RentVsBuyResult, error) {
	return observe(ctx, e, OpCompare,
		[]attribute.KeyValue{
			attribute.Float64("property_value", req.PropertyValue),
			attribute.Float64("down_payment", req.DownPayment),
			attribute.Float64("monthly_rent", req.MonthlyRent),
			attribute.Float64("loan_term_years", req.LoanTermYears),
		},
		func() (calculations.RentVsBuyParams, error) { return req.params(e.cfg) },
		calculations.RentVsBuy,
		func(r *calculations.RentVsBuyResult) []attribute.KeyValue {
			attrs := []attribute.KeyValue{
				attribute.Float64("buy_position", r.BuyPosition),
				attribute.Float64("rent_position", r.RentPosition),
			}
			if r.BreakEvenMonth != nil {
				attrs = append(attrs, attribute.Int("break_even_month", *r.BreakEvenMonth))
			}
			return attrs
		},
	)
}

// Currency пересчитывает график в несколько валют
func (e *Engine) Currency(ctx context.Context, req CurrencyRequest) (*calculations.CurrencyResult, error) {
	return observe(ctx, e, OpCurrency,
		[]attribute.KeyValue{
			attribute.Float64("loan_amount", req.LoanAmount),
			attribute.String("base_currency", req.BaseCurrency),
			attribute.StringSlice("target_currencies", req.TargetCurrencies),
		},
		func() (calculations.CurrencyParams, error) { return req.params(e.cfg) },
		calculations.ProjectCurrencies,
		func(r *calculations.CurrencyResult) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.Int("months", len(r.CurrencyAnalysis)),
				attribute.StringSlice("currencies", r.Currencies),
			}
		},
	)
}

// EarlyRepayment считает сценарий досрочного погашения
func (e *Engine) EarlyRepayment(ctx context.Context, req EarlyRepaymentRequest) (*calculations.EarlyRepaymentResult, error) {
	return observe(ctx, e, OpEarlyRepayment,
		[]attribute.KeyValue{
			attribute.Float64("loan_amount", req.LoanAmount),
			attribute.Float64("interest_rate", req.InterestRate),
			attribute.Int("early_payments", len(req.EarlyPayments)),
		},
		func() (earlyRepaymentParams, error) { return req.params(e.cfg) },
		func(p earlyRepaymentParams) (*calculations.EarlyRepaymentResult, error) {
			return calculations.EarlyRepayment(p.spec, p.payments)
		},
		func(r *calculations.EarlyRepaymentResult) []attribute.KeyValue {
			metrics.ScheduleMonths.Observe(float64(len(r.EarlySchedule)))
			return []attribute.KeyValue{
				attribute.Int("months_saved", r.MonthsSaved),
				attribute.Float64("interest_saved", r.InterestSaved),
			}
		},
	)
}

// Restructuring считает сценарий реструктуризации
func (e *Engine) Restructuring(ctx context.Context, req RestructuringRequest) (*calculations.RestructuringResult, error) {
	return observe(ctx, e, OpRestructuring,
		[]attribute.KeyValue{
			attribute.Float64("loan_amount", req.LoanAmount),
			attribute.Float64("original_interest_rate", req.OriginalInterestRate),
			attribute.Int("months_paid", req.MonthsPaid),
		},
		func() (restructuringParams, error) { return req.params(e.cfg) },
		func(p restructuringParams) (*calculations.RestructuringResult, error) {
			return calculations.Restructure(p.spec, p.terms)
		},
		func(r *calculations.RestructuringResult) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.Float64("remaining_balance", r.RemainingBalance),
				attribute.Float64("savings", r.Savings),
			}
		},
	)
}

// Insurance считает сценарий со страховыми взносами
func (e *Engine) Insurance(ctx context.Context, req InsuranceRequest) (*calculations.InsuranceResult, error) {
	return observe(ctx, e, OpInsurance,
		[]attribute.KeyValue{
			attribute.Float64("loan_amount", req.LoanAmount),
			attribute.Float64("insurance_rate", req.InsuranceRate),
		},
		func() (insuranceParams, error) { return req.params(e.cfg) },
		func(p insuranceParams) (*calculations.InsuranceResult, error) {
			return calculations.WithInsurance(p.spec, p.rate, p.termMonths)
		},
		func(r *calculations.InsuranceResult) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.Float64("monthly_insurance", r.MonthlyInsurance),
				attribute.Float64("total_insurance", r.TotalInsurance),
			}
		},
	)
}

// CentralBankRate считает сценарий с плавающей ставкой
func (e *Engine) CentralBankRate(ctx context.Context, req CentralBankRequest) (*calculations.CentralBankResult, error) {
	return observe(ctx, e, OpCentralBankRate,
		[]attribute.KeyValue{
			attribute.Float64("loan_amount", req.LoanAmount),
			attribute.Float64("central_bank_rate", req.CentralBankRate),
			attribute.Float64("margin", req.Margin),
			attribute.Int("predicted_rates", len(req.PredictedCbRates)),
		},
		func() (calculations.CentralBankParams, error) { return req.params(e.cfg) },
		calculations.CentralBankRate,
		func(r *calculations.CentralBankResult) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.Float64("payment_difference", r.PaymentDifference),
				attribute.Float64("interest_difference", r.InterestDifference),
			}
		},
	)
}

// observe выполняет проверку и расчет одной операции
func observe[P any, R any](
	ctx context.Context,
	e *Engine,
	op string,
	attrs []attribute.KeyValue,
	validate func() (P, error),
	compute func(P) (*R, error),
	describe func(*R) []attribute.KeyValue,
) (*R, error) {
	ctx, span := e.tracer.Start(ctx, op)
	defer span.End()
	span.SetAttributes(attrs...)

	start := time.Now()
	logger := e.logger.With(zap.String("op", op), zap.String("request_id", RequestIDFromContext(ctx)))

	params, err := validate()
	if err != nil {
		span.SetAttributes(attribute.String("error", "validation_error"))
		span.SetStatus(codes.Error, err.Error())
		metrics.EngineCalls.WithLabelValues(op, "validation_error").Inc()
		metrics.CalculationErrors.WithLabelValues(op, "validation").Inc()
		logger.Info("неверные параметры", zap.Error(err))
		return nil, fmt.Errorf("неверные параметры: %w", err)
	}

	result, err := compute(params)
	if err != nil {
		errorType := ErrorType(err)
		span.SetAttributes(attribute.String("error", errorType))
		span.SetStatus(codes.Error, err.Error())
		metrics.EngineCalls.WithLabelValues(op, "error").Inc()
		metrics.CalculationErrors.WithLabelValues(op, errorType).Inc()
		logger.Warn("ошибка при выполнении расчета", zap.Error(err), zap.String("error_type", errorType))
		return nil, fmt.Errorf("ошибка при выполнении расчета: %w", err)
	}

	span.SetAttributes(attribute.Bool("success", true))
	if describe != nil {
		span.SetAttributes(describe(result)...)
	}
	metrics.EngineCalls.WithLabelValues(op, "success").Inc()
	logger.Debug("расчет выполнен", zap.Duration("duration", time.Since(start)))

	return result, nil
}

// ErrorType классифицирует ошибку для метрик и ответа API
func ErrorType(err error) string {
	switch {
	case errors.Is(err, calculations.ErrInvalidLoanSpec):
		return "invalid_loan_spec"
	case errors.Is(err, calculations.ErrInvalidEarlyPayment):
		return "invalid_early_payment"
	case errors.Is(err, calculations.ErrInvalidScenarioParameter):
		return "invalid_scenario_parameter"
	case errors.Is(err, calculations.ErrComputation):
		return "computation"
	default:
		return "internal"
	}
}

// IsValidationError сообщает, что ошибка вызвана параметрами запроса
func IsValidationError(err error) bool {
	return errors.Is(err, calculations.ErrInvalidLoanSpec) ||
		errors.Is(err, calculations.ErrInvalidEarlyPayment) ||
		errors.Is(err, calculations.ErrInvalidScenarioParameter)
}

type requestIDKey struct{}

// WithRequestID сохраняет идентификатор запроса в контексте
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext возвращает идентификатор запроса или пустую строку
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
