package service

import (
	"context"
	"fmt"
	"sort"
)

// Decoder заполняет запрос операции из внешнего формата (JSON, YAML)
type Decoder func(v interface{}) error

// OperationHandler выполняет операцию по ее имени
type OperationHandler func(ctx context.Context, decode Decoder) (interface{}, error)

func bind[Req any, Res any](call func(context.Context, Req) (*Res, error)) OperationHandler {
	return func(ctx context.Context, decode Decoder) (interface{}, error) {
		var req Req
		if err := decode(&req); err != nil {
			return nil, fmt.Errorf("ошибка разбора запроса: %w", err)
		}
		res, err := call(ctx, req)
		if err != nil {
			return nil, err
		}
		return res, nil
	}
}

// Handlers возвращает обработчики всех операций по именам
func (e *Engine) Handlers() map[string]OperationHandler {
	return map[string]OperationHandler{
		OpCalculate:       bind(e.Calculate),
		OpCompareTypes:    bind(e.ComparePaymentTypes),
		OpForecast:        bind(e.Forecast),
		OpCompare:         bind(e.Compare),
		OpCurrency:        bind(e.Currency),
		OpEarlyRepayment:  bind(e.EarlyRepayment),
		OpRestructuring:   bind(e.Restructuring),
		OpInsurance:       bind(e.Insurance),
		OpCentralBankRate: bind(e.CentralBankRate),
	}
}

// Execute выполняет операцию op с запросом, который читает decode
func (e *Engine) Execute(ctx context.Context, op string, decode Decoder) (interface{}, error) {
	handler, ok := e.Handlers()[op]
	if !ok {
		return nil, fmt.Errorf("неизвестная операция %q, доступны: %v", op, Operations())
	}
	return handler(ctx, decode)
}

// Operations возвращает отсортированный список имен операций
func Operations() []string {
	ops := []string{
		OpCalculate, OpCompareTypes, OpForecast, OpCompare, OpCurrency,
		OpEarlyRepayment, OpRestructuring, OpInsurance, OpCentralBankRate,
	}
	sort.Strings(ops)
	return ops
}
