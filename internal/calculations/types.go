package calculations

// PaymentType определяет схему погашения кредита
type PaymentType string

const (
	PaymentAnnuity        PaymentType = "annuity"
	PaymentDifferentiated PaymentType = "differentiated"
)

// LoanSpec описывает кредит: сумма, годовая ставка, срок и схема погашения
type LoanSpec struct {
	Principal         float64
	AnnualRatePercent float64
	TermMonths        int
	PaymentType       PaymentType
}

// ScheduleEntry представляет одну запись в графике платежей
type ScheduleEntry struct {
	Month         int     `json:"month"`
	Payment       float64 `json:"payment"`
	Principal     float64 `json:"principal"`
	Interest      float64 `json:"interest"`
	RemainingLoan float64 `json:"remainingLoan"`
}

// CalculationResult представляет результат расчета графика кредита
type CalculationResult struct {
	Schedule       []ScheduleEntry `json:"schedule"`
	PaymentType    PaymentType     `json:"paymentType"`
	MonthlyPayment float64         `json:"monthlyPayment,omitempty"`
	FirstPayment   float64         `json:"firstPayment"`
	LastPayment    float64         `json:"lastPayment"`
	TotalInterest  float64         `json:"totalInterest"`
	TotalPayments  float64         `json:"totalPayments"`
}

// PaymentTypeComparison представляет сравнение аннуитетной и дифференцированной схем
type PaymentTypeComparison struct {
	Annuity        CalculationResult `json:"annuity"`
	Differentiated CalculationResult `json:"differentiated"`
	TotalPaidDiff  float64           `json:"totalPaidDiff"`
	InterestDiff   float64           `json:"interestDiff"`
	CheaperType    string            `json:"cheaperType"`
	Savings        float64           `json:"savings"`
}

// EarlyPaymentEffect определяет, что уменьшает досрочный платеж
type EarlyPaymentEffect string

const (
	ReduceTerm    EarlyPaymentEffect = "reduce_term"
	ReducePayment EarlyPaymentEffect = "reduce_payment"
)

// EarlyPayment описывает досрочный платеж в указанном месяце
type EarlyPayment struct {
	Month  int                `json:"month" yaml:"month"`
	Amount float64            `json:"amount" yaml:"amount"`
	Effect EarlyPaymentEffect `json:"type" yaml:"type"`
}

// EarlyScheduleEntry - запись графика с досрочным погашением
type EarlyScheduleEntry struct {
	ScheduleEntry
	EarlyPayment   float64 `json:"earlyPayment"`
	MonthlyPayment float64 `json:"monthlyPayment"`
}

// EarlyRepaymentResult представляет результат сценария досрочного погашения
type EarlyRepaymentResult struct {
	EarlySchedule        []EarlyScheduleEntry `json:"earlySchedule"`
	RegularSchedule      []ScheduleEntry      `json:"regularSchedule"`
	TotalPaymentsEarly   float64              `json:"totalPaymentsEarly"`
	TotalPaymentsRegular float64              `json:"totalPaymentsRegular"`
	TotalInterestEarly   float64              `json:"totalInterestEarly"`
	TotalInterestRegular float64              `json:"totalInterestRegular"`
	InterestSaved        float64              `json:"interestSaved"`
	MonthsSaved          int                  `json:"monthsSaved"`
}

// RestructuringStatus отмечает месяц относительно момента реструктуризации
type RestructuringStatus string

const (
	BeforeRestructuring RestructuringStatus = "before_restructuring"
	AfterRestructuring  RestructuringStatus = "after_restructuring"
)

// RestructuringPoint - помесячное сравнение исходного и нового графиков
type RestructuringPoint struct {
	Month                 int                 `json:"month"`
	OriginalPayment       float64             `json:"originalPayment"`
	RestructuredPayment   float64             `json:"restructuredPayment"`
	OriginalRemaining     float64             `json:"originalRemaining"`
	RestructuredRemaining float64             `json:"restructuredRemaining"`
	PaymentDifference     float64             `json:"paymentDifference"`
	Status                RestructuringStatus `json:"status"`
}

// RestructuringResult представляет результат реструктуризации
type RestructuringResult struct {
	OriginalSchedule           []ScheduleEntry      `json:"originalSchedule"`
	RestructuredSchedule       []ScheduleEntry      `json:"restructuredSchedule"`
	Comparison                 []RestructuringPoint `json:"comparison"`
	RemainingBalance           float64              `json:"remainingBalance"`
	OriginalRemainingPayments  float64              `json:"originalRemainingPayments"`
	RestructuredTotalPayments  float64              `json:"restructuredTotalPayments"`
	OriginalRemainingInterest  float64              `json:"originalRemainingInterest"`
	RestructuredTotalInterest  float64              `json:"restructuredTotalInterest"`
	OriginalMonthlyPayment     float64              `json:"originalMonthlyPayment"`
	RestructuredMonthlyPayment float64              `json:"restructuredMonthlyPayment"`
	OriginalRemainingTerm      int                  `json:"originalRemainingTerm"`
	RestructuredTerm           int                  `json:"restructuredTerm"`
	Savings                    float64              `json:"savings"`
}

// InsuranceEntry - запись графика со страховым взносом
type InsuranceEntry struct {
	ScheduleEntry
	Insurance    float64 `json:"insurance"`
	TotalPayment float64 `json:"totalPayment"`
}

// InsuranceResult представляет результат расчета со страховкой
type InsuranceResult struct {
	InsuranceSchedule          []InsuranceEntry `json:"insuranceSchedule"`
	MonthlyInsurance           float64          `json:"monthlyInsurance"`
	InsuranceTermMonths        int              `json:"insuranceTermMonths"`
	TotalInsurance             float64          `json:"totalInsurance"`
	TotalPaymentsWithInsurance float64          `json:"totalPaymentsWithInsurance"`
	TotalPaymentsRegular       float64          `json:"totalPaymentsRegular"`
	IncreaseTotalPayments      float64          `json:"increaseTotalPayments"`
}

// RateChangePoint задает новую ставку начиная с указанного месяца
type RateChangePoint struct {
	Month             int     `json:"month" yaml:"month"`
	AnnualRatePercent float64 `json:"rate" yaml:"rate"`
}

// FloatingEntry - запись графика с плавающей ставкой
type FloatingEntry struct {
	ScheduleEntry
	CbRate       float64 `json:"cbRate"`
	InterestRate float64 `json:"interestRate"`
}

// CentralBankResult представляет сравнение плавающей и фиксированной ставок
type CentralBankResult struct {
	CbSchedule         []FloatingEntry `json:"cbSchedule"`
	FixedSchedule      []ScheduleEntry `json:"fixedSchedule"`
	TotalPaymentsCb    float64         `json:"totalPaymentsCb"`
	TotalPaymentsFixed float64         `json:"totalPaymentsFixed"`
	TotalInterestCb    float64         `json:"totalInterestCb"`
	TotalInterestFixed float64         `json:"totalInterestFixed"`
	PaymentDifference  float64         `json:"paymentDifference"`
	InterestDifference float64         `json:"interestDifference"`
}

// ForecastModel определяет модель роста стоимости
type ForecastModel string

const (
	ModelLinear      ForecastModel = "linear"
	ModelExponential ForecastModel = "exponential"
	ModelML          ForecastModel = "ml"
)

// ForecastPoint - прогнозная стоимость на конец месяца
type ForecastPoint struct {
	Month        int     `json:"month"`
	NominalValue float64 `json:"nominalValue"`
	RealValue    float64 `json:"realValue"`
}

// ForecastResult представляет прогноз стоимости
type ForecastResult struct {
	Forecast          []ForecastPoint `json:"forecast"`
	Model             ForecastModel   `json:"model"`
	FinalNominalValue float64         `json:"finalNominalValue"`
	FinalRealValue    float64         `json:"finalRealValue"`
	TotalGrowth       float64         `json:"totalGrowth"`
	RealGrowth        float64         `json:"realGrowth"`
}

// ComparisonPoint - состояние сценариев "купить" и "арендовать" на конец месяца
type ComparisonPoint struct {
	Month             int     `json:"month"`
	MortgagePayment   float64 `json:"mortgagePayment"`
	PropertyTax       float64 `json:"propertyTax"`
	Maintenance       float64 `json:"maintenance"`
	RentalIncome      float64 `json:"rentalIncome"`
	TaxBenefit        float64 `json:"taxBenefit"`
	TotalBuyCost      float64 `json:"totalBuyCost"`
	RentPayment       float64 `json:"rentPayment"`
	OpportunityCost   float64 `json:"opportunityCost"`
	TotalRentCost     float64 `json:"totalRentCost"`
	PropertyValue     float64 `json:"propertyValue"`
	PropertyRealValue float64 `json:"propertyRealValue"`
	PropertyEquity    float64 `json:"propertyEquity"`
	InvestmentValue   float64 `json:"investmentValue"`
	NetWorthBuy       float64 `json:"netWorthBuy"`
	NetWorthRent      float64 `json:"netWorthRent"`
	BreakEven         bool    `json:"breakEven"`
}

// RentVsBuyResult представляет результат сравнения аренды и покупки
type RentVsBuyResult struct {
	Comparison           []ComparisonPoint `json:"comparison"`
	BreakEvenMonth       *int              `json:"breakEvenMonth"`
	BreakEvenYears       *float64          `json:"breakEvenYears"`
	TotalBuyCosts        float64           `json:"totalBuyCosts"`
	TotalRentCosts       float64           `json:"totalRentCosts"`
	FinalPropertyValue   float64           `json:"finalPropertyValue"`
	FinalInvestmentValue float64           `json:"finalInvestmentValue"`
	BuyPosition          float64           `json:"buyPosition"`
	RentPosition         float64           `json:"rentPosition"`
}
