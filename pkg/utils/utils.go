package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 округляет денежное значение до копеек (половина - от нуля)
func Round2(value float64) float64 {
	if !IsFinite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// AllFinite проверяет, что все значения конечны
func AllFinite(values ...float64) bool {
	for _, v := range values {
		if !IsFinite(v) {
			return false
		}
	}
	return true
}

// MonthlyRate переводит годовую ставку в процентах в месячную долю
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100.0 / 12.0
}

// MonthlyCompoundRate переводит годовой прирост в процентах в эквивалентный
// месячный при ежемесячной капитализации
func MonthlyCompoundRate(annualPercent float64) float64 {
	return math.Pow(1.0+annualPercent/100.0, 1.0/12.0) - 1.0
}
