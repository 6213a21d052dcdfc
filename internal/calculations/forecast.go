package calculations

import (
	"math"

	"github.com/cloud-ru/mortgage-engine-go/pkg/utils"
)

// ForecastParams - параметры прогноза стоимости
type ForecastParams struct {
	InitialValue         float64
	GrowthRatePercent    float64
	Months               int
	Model                ForecastModel
	InflationRatePercent float64
	// RegionalAdjustment добавляется к темпу роста, в процентных пунктах
	RegionalAdjustment float64
	// SeasonalFactors - 12 множителей по месяцам года; пустой срез отключает сезонность
	SeasonalFactors []float64
}

// EffectiveModel возвращает модель, которая фактически используется для расчета.
// Для "ml" алгоритм не определен, поэтому прогноз строится экспоненциальной моделью.
func EffectiveModel(model ForecastModel) ForecastModel {
	switch model {
	case "", ModelLinear:
		return ModelLinear
	case ModelML:
		return ModelExponential
	default:
		return model
	}
}

// Project прогнозирует стоимость помесячно в номинальном и реальном выражении:
//
//	linear:      V[m] = V0 * (1 + g/100 * m/12)
//	exponential: V[m] = V0 * (1 + g/100)^(m/12)
//	real:        R[m] = V[m] / (1 + i/100)^(m/12)
func Project(p ForecastParams) (*ForecastResult, error) {
	if !utils.IsFinite(p.InitialValue) || p.InitialValue <= 0 {
		return nil, scenarioError("начальная стоимость должна быть положительной")
	}
	if p.Months < 1 {
		return nil, scenarioError("горизонт прогноза должен быть не меньше одного месяца")
	}
	if len(p.SeasonalFactors) != 0 && len(p.SeasonalFactors) != 12 {
		return nil, scenarioError("сезонные коэффициенты: ожидается 12 значений, получено %d", len(p.SeasonalFactors))
	}
	for i, f := range p.SeasonalFactors {
		if !utils.IsFinite(f) || f <= 0 {
			return nil, scenarioError("сезонный коэффициент #%d должен быть положительным", i+1)
		}
	}
	growth := p.GrowthRatePercent + p.RegionalAdjustment
	if !utils.AllFinite(growth, p.InflationRatePercent) {
		return nil, scenarioError("темпы роста и инфляции должны быть конечными числами")
	}
	if p.InflationRatePercent <= -100 {
		return nil, scenarioError("инфляция должна быть больше -100%%")
	}

	model := EffectiveModel(p.Model)
	var value func(m int) float64
	switch model {
	case ModelLinear:
		value = func(m int) float64 {
			return p.InitialValue * (1 + growth/100*float64(m)/12)
		}
	case ModelExponential:
		if growth <= -100 {
			return nil, scenarioError("темп роста должен быть больше -100%%")
		}
		value = func(m int) float64 {
			return p.InitialValue * math.Pow(1+growth/100, float64(m)/12)
		}
	default:
		return nil, scenarioError("неизвестная модель прогноза %q", p.Model)
	}

	points := make([]ForecastPoint, 0, p.Months)
	for m := 1; m <= p.Months; m++ {
		nominal := value(m)
		if len(p.SeasonalFactors) == 12 {
			nominal *= p.SeasonalFactors[(m-1)%12]
		}
		realValue := nominal / math.Pow(1+p.InflationRatePercent/100, float64(m)/12)
		if !utils.AllFinite(nominal, realValue) {
			return nil, computationError("месяц %d: прогноз не является конечным числом", m)
		}
		points = append(points, ForecastPoint{
			Month:        m,
			NominalValue: utils.Round2(nominal),
			RealValue:    utils.Round2(realValue),
		})
	}

	last := points[len(points)-1]
	return &ForecastResult{
		Forecast:          points,
		Model:             model,
		FinalNominalValue: last.NominalValue,
		FinalRealValue:    last.RealValue,
		TotalGrowth:       last.NominalValue/p.InitialValue - 1,
		RealGrowth:        last.RealValue/p.InitialValue - 1,
	}, nil
}
