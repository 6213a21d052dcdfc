package service

import (
	"context"
	"testing"

	"github.com/cloud-ru/mortgage-engine-go/internal/calculations"
	"gopkg.in/yaml.v3"
)

func TestExecuteYAML(t *testing.T) {
	engine := newTestEngine()
	doc := []byte(`
loanAmount: 1000000
interestRate: 12
loanTermYears: 1
earlyPayments:
  - month: 3
    amount: 200000
    type: reduce_term
`)
	result, err := engine.Execute(context.Background(), OpEarlyRepayment, func(v interface{}) error {
		return yaml.Unmarshal(doc, v)
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	early, ok := result.(*calculations.EarlyRepaymentResult)
	if !ok {
		t.Fatalf("unexpected result type %T", result)
	}
	if early.MonthsSaved != 2 {
		t.Errorf("months saved = %d, want 2", early.MonthsSaved)
	}
}

func TestExecuteUnknownOperation(t *testing.T) {
	engine := newTestEngine()
	if _, err := engine.Execute(context.Background(), "mystery", func(interface{}) error { return nil }); err == nil {
		t.Error("expected error for unknown operation")
	}
}

func TestHandlersCoverOperations(t *testing.T) {
	handlers := newTestEngine().Handlers()
	for _, op := range Operations() {
		if _, ok := handlers[op]; !ok {
			t.Errorf("no handler for %s", op)
		}
	}
	if len(handlers) != len(Operations()) {
		t.Errorf("handlers %d != operations %d", len(handlers), len(Operations()))
	}
}
