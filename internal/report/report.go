// Package report форматирует результаты расчетов для командной строки.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/cloud-ru/mortgage-engine-go/internal/calculations"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Field - итоговый показатель
type Field struct {
	Name  string
	Value float64
}

// Report - таблица помесячных значений и итоги
type Report struct {
	Title   string
	Columns []string
	Rows    [][]float64
	Summary []Field
}

// FromResult строит отчет из результата любой операции ядра
func FromResult(title string, result interface{}) (*Report, error) {
	r := &Report{Title: title}
	switch res := result.(type) {
	case *calculations.CalculationResult:
		r.scheduleTable(res.Schedule)
		r.Summary = []Field{
			{"Первый платеж", res.FirstPayment},
			{"Последний платеж", res.LastPayment},
			{"Всего процентов", res.TotalInterest},
			{"Всего выплат", res.TotalPayments},
		}
	case *calculations.PaymentTypeComparison:
		r.Columns = []string{"Месяц", "Аннуитетный", "Дифференцированный"}
		for i, a := range res.Annuity.Schedule {
			var d float64
			if i < len(res.Differentiated.Schedule) {
				d = res.Differentiated.Schedule[i].Payment
			}
			r.Rows = append(r.Rows, []float64{float64(a.Month), a.Payment, d})
		}
		r.Summary = []Field{
			{"Итого аннуитетный", res.Annuity.TotalPayments},
			{"Итого дифференцированный", res.Differentiated.TotalPayments},
			{"Экономия", res.Savings},
		}
	case *calculations.ForecastResult:
		r.Columns = []string{"Месяц", "Номинал", "Реальная"}
		for _, p := range res.Forecast {
			r.Rows = append(r.Rows, []float64{float64(p.Month), p.NominalValue, p.RealValue})
		}
		r.Summary = []Field{
			{"Итоговая номинальная стоимость", res.FinalNominalValue},
			{"Итоговая реальная стоимость", res.FinalRealValue},
		}
	case *calculations.RentVsBuyResult:
		r.Columns = []string{"Месяц", "Расходы покупки", "Расходы аренды", "Капитал покупки", "Капитал аренды"}
		for _, p := range res.Comparison {
			r.Rows = append(r.Rows, []float64{float64(p.Month), p.TotalBuyCost, p.TotalRentCost, p.NetWorthBuy, p.NetWorthRent})
		}
		r.Summary = []Field{
			{"Позиция покупки", res.BuyPosition},
			{"Позиция аренды", res.RentPosition},
		}
		if res.BreakEvenMonth != nil {
			r.Summary = append(r.Summary, Field{"Месяц безубыточности", float64(*res.BreakEvenMonth)})
		}
	case *calculations.CurrencyResult:
		r.Columns = []string{"Месяц"}
		for _, c := range res.Currencies {
			r.Columns = append(r.Columns, "Платеж "+c, "Курс "+c)
		}
		for _, e := range res.CurrencyAnalysis {
			row := []float64{float64(e.Month)}
			for _, c := range res.Currencies {
				row = append(row, e.Currencies[c].Payment, e.Currencies[c].Rate)
			}
			r.Rows = append(r.Rows, row)
		}
		codes := make([]string, 0, len(res.TotalPayments))
		for c := range res.TotalPayments {
			codes = append(codes, c)
		}
		sort.Strings(codes)
		for _, c := range codes {
			r.Summary = append(r.Summary, Field{"Всего выплат " + c, res.TotalPayments[c]})
		}
	case *calculations.EarlyRepaymentResult:
		r.Columns = []string{"Месяц", "Платеж", "Досрочно", "Проценты", "Остаток"}
		for _, e := range res.EarlySchedule {
			r.Rows = append(r.Rows, []float64{float64(e.Month), e.Payment, e.EarlyPayment, e.Interest, e.RemainingLoan})
		}
		r.Summary = []Field{
			{"Экономия на процентах", res.InterestSaved},
			{"Сокращение срока, мес", float64(res.MonthsSaved)},
		}
	case *calculations.RestructuringResult:
		r.Columns = []string{"Месяц", "Исходный", "Новый", "Разница"}
		for _, p := range res.Comparison {
			r.Rows = append(r.Rows, []float64{float64(p.Month), p.OriginalPayment, p.RestructuredPayment, p.PaymentDifference})
		}
		r.Summary = []Field{
			{"Остаток долга", res.RemainingBalance},
			{"Экономия", res.Savings},
		}
	case *calculations.InsuranceResult:
		r.Columns = []string{"Месяц", "Платеж", "Страховка", "Итого"}
		for _, e := range res.InsuranceSchedule {
			r.Rows = append(r.Rows, []float64{float64(e.Month), e.Payment, e.Insurance, e.TotalPayment})
		}
		r.Summary = []Field{
			{"Всего страховки", res.TotalInsurance},
			{"Всего со страховкой", res.TotalPaymentsWithInsurance},
		}
	case *calculations.CentralBankResult:
		r.Columns = []string{"Месяц", "Платеж", "Ключевая ставка", "Ставка кредита", "Остаток"}
		for _, e := range res.CbSchedule {
			r.Rows = append(r.Rows, []float64{float64(e.Month), e.Payment, e.CbRate, e.InterestRate, e.RemainingLoan})
		}
		r.Summary = []Field{
			{"Всего выплат по плавающей", res.TotalPaymentsCb},
			{"Всего выплат по фиксированной", res.TotalPaymentsFixed},
			{"Разница выплат", res.PaymentDifference},
		}
	default:
		return nil, fmt.Errorf("неподдерживаемый тип результата %T", result)
	}
	return r, nil
}

func (r *Report) scheduleTable(schedule []calculations.ScheduleEntry) {
	r.Columns = []string{"Месяц", "Платеж", "Основной долг", "Проценты", "Остаток"}
	for _, e := range schedule {
		r.Rows = append(r.Rows, []float64{float64(e.Month), e.Payment, e.Principal, e.Interest, e.RemainingLoan})
	}
}

// WritePretty выводит таблицу для чтения человеком, с разделителями разрядов
func WritePretty(w io.Writer, r *Report) error {
	p := message.NewPrinter(language.English)
	if _, err := fmt.Fprintf(w, "--- %s ---\n", r.Title); err != nil {
		return err
	}
	for i, c := range r.Columns {
		if i > 0 {
			fmt.Fprint(w, " | ")
		}
		fmt.Fprintf(w, "%16s", c)
	}
	fmt.Fprintln(w)

	for _, row := range r.Rows {
		for i, v := range row {
			if i > 0 {
				fmt.Fprint(w, " | ")
			}
			if i == 0 {
				fmt.Fprintf(w, "%16d", int(v))
				continue
			}
			_, _ = p.Fprintf(w, "%16.2f", v)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
	for _, f := range r.Summary {
		if _, err := p.Fprintf(w, "%s: %.2f\n", f.Name, f.Value); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV выводит таблицу в формате CSV; итоги не выводятся
func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Columns); err != nil {
		return err
	}
	record := make([]string, len(r.Columns))
	for _, row := range r.Rows {
		for i, v := range row {
			if i == 0 {
				record[i] = strconv.Itoa(int(v))
				continue
			}
			record[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := cw.Write(record[:len(row)]); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
