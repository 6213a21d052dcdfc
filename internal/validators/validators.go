package validators

import (
	"fmt"
	"math"

	"github.com/cloud-ru/mortgage-engine-go/internal/config"
	"github.com/cloud-ru/mortgage-engine-go/pkg/utils"
	"go.uber.org/multierr"
)

// ValidatePositiveNumber проверяет, что число конечно и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%s: значение не является конечным числом", name)
	}
	if value < minInclusive {
		return fmt.Errorf("%s: значение должно быть ≥ %g", name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%s: значение слишком велико (>%g)", name, maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%s: значение должно быть в диапазоне [%d; %d]", name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckPrincipal проверяет сумму кредита
func CheckPrincipal(cfg *config.Config, name string, principal float64) error {
	if err := ValidatePositiveNumber(name, principal, 0, cfg.MaxPrincipal); err != nil {
		return err
	}
	if principal == 0 {
		return fmt.Errorf("%s: значение должно быть положительным", name)
	}
	return nil
}

// CheckAmount проверяет неотрицательную денежную сумму
func CheckAmount(cfg *config.Config, name string, amount float64) error {
	return ValidatePositiveNumber(name, amount, 0, cfg.MaxPrincipal)
}

// CheckRate проверяет процентную ставку
func CheckRate(cfg *config.Config, name string, rate float64) error {
	return ValidatePositiveNumber(name, rate, 0, cfg.MaxRate)
}

// CheckGrowthRate проверяет темп изменения в процентах в год: он может быть
// отрицательным, но строго больше -100
func CheckGrowthRate(cfg *config.Config, name string, rate float64) error {
	if !utils.IsFinite(rate) {
		return fmt.Errorf("%s: значение не является конечным числом", name)
	}
	if rate <= -100 {
		return fmt.Errorf("%s: значение должно быть больше -100", name)
	}
	if rate > cfg.MaxRate {
		return fmt.Errorf("%s: значение слишком велико (>%g)", name, cfg.MaxRate)
	}
	return nil
}

// CheckMonths проверяет срок в месяцах
func CheckMonths(cfg *config.Config, name string, months int) error {
	return ValidateIntRange(name, months, 1, cfg.MaxMonths)
}

// TermYearsToMonths переводит срок в годах в месяцы с округлением до ближайшего
func TermYearsToMonths(years float64) int {
	if !utils.IsFinite(years) {
		return 0
	}
	return int(math.Round(years * 12))
}

// CheckTermYears проверяет срок в годах и возвращает его в месяцах
func CheckTermYears(cfg *config.Config, name string, years float64) (int, error) {
	if !utils.IsFinite(years) || years <= 0 {
		return 0, fmt.Errorf("%s: срок должен быть положительным", name)
	}
	months := TermYearsToMonths(years)
	if err := CheckMonths(cfg, name, months); err != nil {
		return 0, err
	}
	return months, nil
}

// CheckEarlyPaymentsCount ограничивает количество досрочных платежей в запросе
func CheckEarlyPaymentsCount(cfg *config.Config, count int) error {
	return ValidateIntRange("earlyPayments", count, 0, cfg.MaxEarlyPayments)
}

// CheckCurrencyCode проверяет трехбуквенный код валюты
func CheckCurrencyCode(name, code string) error {
	if len(code) != 3 {
		return fmt.Errorf("%s: код валюты %q должен состоять из трех букв", name, code)
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return fmt.Errorf("%s: код валюты %q должен состоять из трех букв", name, code)
		}
	}
	return nil
}

// Collector накапливает ошибки всех полей запроса
type Collector struct {
	err error
}

// Add добавляет ошибку; nil игнорируется
func (c *Collector) Add(err error) {
	c.err = multierr.Append(c.err, err)
}

// Errors возвращает список накопленных ошибок
func (c *Collector) Errors() []error {
	return multierr.Errors(c.err)
}

// Err возвращает nil или объединенную ошибку, обернутую в sentinel
func (c *Collector) Err(sentinel error) error {
	if c.err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", sentinel, c.err)
}
