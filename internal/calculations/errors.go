package calculations

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLoanSpec - неположительная сумма или срок, отрицательная ставка
	ErrInvalidLoanSpec = errors.New("некорректные параметры кредита")
	// ErrInvalidEarlyPayment - досрочный платеж вне срока, с неположительной суммой или неизвестным типом
	ErrInvalidEarlyPayment = errors.New("некорректный досрочный платеж")
	// ErrInvalidScenarioParameter - параметр сценария вне допустимой области
	ErrInvalidScenarioParameter = errors.New("некорректный параметр сценария")
	// ErrComputation - численная ошибка (NaN, бесконечность, отрицательный остаток)
	ErrComputation = errors.New("численная ошибка")
)

func loanSpecError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidLoanSpec, fmt.Sprintf(format, args...))
}

func scenarioError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidScenarioParameter, fmt.Sprintf(format, args...))
}

func earlyPaymentError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidEarlyPayment, fmt.Sprintf(format, args...))
}

func computationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrComputation, fmt.Sprintf(format, args...))
}
