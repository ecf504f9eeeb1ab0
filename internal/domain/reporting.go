package domain

// PeriodMetrics is revenue, expense and profit for a span of time
type PeriodMetrics struct {
	Month   string  `json:"month,omitempty"`
	Revenue float64 `json:"revenue"`
	Expense float64 `json:"expense"`
	Profit  float64 `json:"profit"`
}

// OverallMetrics aggregates every transaction on record
type OverallMetrics struct {
	TotalRevenue            float64 `json:"totalRevenue"`
	TotalExpense            float64 `json:"totalExpense"`
	TotalProfit             float64 `json:"totalProfit"`
	ProfitMargin            float64 `json:"profitMargin"`
	VehicleCount            int     `json:"vehicleCount"`
	TransactionCount        int     `json:"transactionCount"`
	AverageProfitPerVehicle float64 `json:"averageProfitPerVehicle"`
	AverageTransactionValue float64 `json:"averageTransactionValue"`
}

// TimeMetrics compares recent periods. Growth values are percentages and are
// 0 when the prior period is 0.
type TimeMetrics struct {
	CurrentMonth  PeriodMetrics   `json:"currentMonth"`
	LastMonth     PeriodMetrics   `json:"lastMonth"`
	RevenueGrowth float64         `json:"revenueGrowth"`
	ExpenseGrowth float64         `json:"expenseGrowth"`
	ProfitGrowth  float64         `json:"profitGrowth"`
	YearToDate    PeriodMetrics   `json:"yearToDate"`
	MonthlyTrend  []PeriodMetrics `json:"monthlyTrend"`
}

// VehicleSummary ranks one vehicle by its totals
type VehicleSummary struct {
	VehicleID     string  `json:"vehicleId"`
	VehicleNumber string  `json:"vehicleNumber"`
	Revenue       float64 `json:"revenue"`
	Expense       float64 `json:"expense"`
	Profit        float64 `json:"profit"`
}

type VehicleMetrics struct {
	ProfitableCount int              `json:"profitableCount"`
	LossCount       int              `json:"lossCount"`
	NoDataCount     int              `json:"noDataCount"`
	TopByRevenue    []VehicleSummary `json:"topByRevenue"`
	BottomByRevenue []VehicleSummary `json:"bottomByRevenue"`
	TopByProfit     []VehicleSummary `json:"topByProfit"`
	BottomByProfit  []VehicleSummary `json:"bottomByProfit"`
}

// CustomerRevenue is revenue attributed to a customer through invoices
type CustomerRevenue struct {
	CustomerID       string  `json:"customerId"`
	CustomerName     string  `json:"customerName"`
	Revenue          float64 `json:"revenue"`
	TransactionCount int     `json:"transactionCount"`
}

type CustomerMetrics struct {
	CustomerCount int               `json:"customerCount"`
	TopCustomers  []CustomerRevenue `json:"topCustomers"`
}

// CategoryAmount is a category total with its share of the type total
type CategoryAmount struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type CategoryMetrics struct {
	Revenue []CategoryAmount `json:"revenue"`
	Expense []CategoryAmount `json:"expense"`
}

// DashboardMetrics is the vehicle finance dashboard payload
type DashboardMetrics struct {
	Overall       OverallMetrics  `json:"overall"`
	TimeBased     TimeMetrics     `json:"timeBased"`
	VehicleBased  VehicleMetrics  `json:"vehicleBased"`
	CustomerBased CustomerMetrics `json:"customerBased"`
	CategoryBased CategoryMetrics `json:"categoryBased"`
}

// VehicleProfitability is the finance breakdown of one vehicle
type VehicleProfitability struct {
	VehicleID         string           `json:"vehicleId"`
	VehicleNumber     string           `json:"vehicleNumber"`
	TotalRevenue      float64          `json:"totalRevenue"`
	TotalExpense      float64          `json:"totalExpense"`
	Profit            float64          `json:"profit"`
	ProfitMargin      float64          `json:"profitMargin"`
	TransactionCount  int              `json:"transactionCount"`
	Monthly           []PeriodMetrics  `json:"monthly"`
	RevenueByCategory []CategoryAmount `json:"revenueByCategory"`
	ExpenseByCategory []CategoryAmount `json:"expenseByCategory"`
}
