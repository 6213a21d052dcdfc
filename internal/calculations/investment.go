package calculations

import (
	"github.com/cloud-ru/mortgage-engine-go/pkg/utils"
)

// investmentAccount - счет с ежемесячной капитализацией, на который
// поступает разница в расходах между покупкой и арендой
type investmentAccount struct {
	balance     float64
	monthlyRate float64
}

// newInvestmentAccount открывает счет с начальной суммой и годовой доходностью в процентах
func newInvestmentAccount(initialAmount, annualRatePercent float64) *investmentAccount {
	return &investmentAccount{
		balance:     initialAmount,
		monthlyRate: utils.MonthlyCompoundRate(annualRatePercent),
	}
}

// accrue начисляет доход за месяц и возвращает его
func (acc *investmentAccount) accrue() float64 {
	interest := acc.balance * acc.monthlyRate
	acc.balance += interest
	return interest
}

// contribute вносит (или при отрицательной сумме снимает) средства в конце месяца
func (acc *investmentAccount) contribute(amount float64) {
	acc.balance += amount
}
