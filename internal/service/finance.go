package service

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/mapper"
	"github.com/shopspring/decimal"
)

const (
	// TrendMonths is the length of the rolling monthly trend
	TrendMonths = 12
	// RankingSize is how many vehicles or customers each ranking holds
	RankingSize = 5

	DefaultRevenueCategory = "Rental Income"
	DefaultExpenseCategory = "Other"
)

// FinanceInput is everything the dashboard aggregation reads
type FinanceInput struct {
	Transactions []domain.VehicleTransaction
	Vehicles     []domain.Vehicle
	Customers    []domain.Customer
	// InvoiceCustomers maps invoice ids to customer ids
	InvoiceCustomers map[uuid.UUID]uuid.UUID
}

type ledger struct {
	revenue decimal.Decimal
	expense decimal.Decimal
	count   int
}

func (l *ledger) add(tx *domain.VehicleTransaction) {
	amount := decimal.NewFromFloat(tx.Amount)
	switch tx.TransactionType {
	case domain.TransactionTypeRevenue:
		l.revenue = l.revenue.Add(amount)
	case domain.TransactionTypeExpense:
		l.expense = l.expense.Add(amount)
	default:
		return
	}
	l.count++
}

func (l ledger) profit() decimal.Decimal {
	return l.revenue.Sub(l.expense)
}

func (l ledger) period(month string) domain.PeriodMetrics {
	return domain.PeriodMetrics{
		Month:   month,
		Revenue: l.revenue.InexactFloat64(),
		Expense: l.expense.InexactFloat64(),
		Profit:  l.profit().InexactFloat64(),
	}
}

// transactionMonth is the normalized YYYY-MM of a transaction, falling back
// to its date when the stored month is malformed
func transactionMonth(tx *domain.VehicleTransaction) string {
	if m := mapper.NormalizeMonth(tx.Month); m != "" {
		return m
	}
	return mapper.NormalizeMonth(tx.Date)
}

func categoryOf(tx *domain.VehicleTransaction) string {
	if c := strings.TrimSpace(tx.Category); c != "" {
		return c
	}
	if tx.TransactionType == domain.TransactionTypeRevenue {
		return DefaultRevenueCategory
	}
	return DefaultExpenseCategory
}

// EmptyDashboard is the all-zero dashboard with a complete trend for now
func EmptyDashboard(now time.Time) domain.DashboardMetrics {
	months := mapper.TrailingMonths(now, TrendMonths)
	trend := make([]domain.PeriodMetrics, len(months))
	for i, m := range months {
		trend[i] = domain.PeriodMetrics{Month: m}
	}
	current, last := currentAndLastMonth(now)

	return domain.DashboardMetrics{
		TimeBased: domain.TimeMetrics{
			CurrentMonth: domain.PeriodMetrics{Month: current},
			LastMonth:    domain.PeriodMetrics{Month: last},
			YearToDate:   domain.PeriodMetrics{},
			MonthlyTrend: trend,
		},
		VehicleBased: domain.VehicleMetrics{
			TopByRevenue:    []domain.VehicleSummary{},
			BottomByRevenue: []domain.VehicleSummary{},
			TopByProfit:     []domain.VehicleSummary{},
			BottomByProfit:  []domain.VehicleSummary{},
		},
		CustomerBased: domain.CustomerMetrics{
			TopCustomers: []domain.CustomerRevenue{},
		},
		CategoryBased: domain.CategoryMetrics{
			Revenue: []domain.CategoryAmount{},
			Expense: []domain.CategoryAmount{},
		},
	}
}

func currentAndLastMonth(now time.Time) (string, string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return mapper.MonthKey(first), mapper.MonthKey(first.AddDate(0, -1, 0))
}

// ComputeDashboard aggregates the vehicle finance dashboard in memory
func ComputeDashboard(in FinanceInput, now time.Time) domain.DashboardMetrics {
	metrics := EmptyDashboard(now)
	current, last := currentAndLastMonth(now)
	yearPrefix := current[:5]

	var total ledger
	byMonth := make(map[string]*ledger)
	byVehicle := make(map[uuid.UUID]*ledger)
	byCustomer := make(map[uuid.UUID]*ledger)
	revenueCats := make(map[string]*ledger)
	expenseCats := make(map[string]*ledger)
	var ytd ledger

	get := func(m map[string]*ledger, k string) *ledger {
		l, ok := m[k]
		if !ok {
			l = &ledger{}
			m[k] = l
		}
		return l
	}

	for i := range in.Transactions {
		tx := &in.Transactions[i]
		total.add(tx)

		month := transactionMonth(tx)
		if month != "" {
			get(byMonth, month).add(tx)
			if strings.HasPrefix(month, yearPrefix) && month <= current {
				ytd.add(tx)
			}
		}

		v, ok := byVehicle[tx.VehicleID]
		if !ok {
			v = &ledger{}
			byVehicle[tx.VehicleID] = v
		}
		v.add(tx)

		if tx.TransactionType == domain.TransactionTypeRevenue {
			get(revenueCats, categoryOf(tx)).add(tx)
			if tx.InvoiceID != nil {
				if customerID, ok := in.InvoiceCustomers[*tx.InvoiceID]; ok {
					c, ok := byCustomer[customerID]
					if !ok {
						c = &ledger{}
						byCustomer[customerID] = c
					}
					c.add(tx)
				}
			}
		} else if tx.TransactionType == domain.TransactionTypeExpense {
			get(expenseCats, categoryOf(tx)).add(tx)
		}
	}

	// Overall
	vehicleCount := len(in.Vehicles)
	profit := total.profit()
	metrics.Overall = domain.OverallMetrics{
		TotalRevenue:     total.revenue.InexactFloat64(),
		TotalExpense:     total.expense.InexactFloat64(),
		TotalProfit:      profit.InexactFloat64(),
		ProfitMargin:     mapper.CalculateMargin(profit.InexactFloat64(), total.revenue.InexactFloat64()),
		VehicleCount:     vehicleCount,
		TransactionCount: total.count,
	}
	if vehicleCount > 0 {
		metrics.Overall.AverageProfitPerVehicle = profit.Div(decimal.NewFromInt(int64(vehicleCount))).InexactFloat64()
	}
	if total.count > 0 {
		metrics.Overall.AverageTransactionValue = total.revenue.Add(total.expense).
			Div(decimal.NewFromInt(int64(total.count))).InexactFloat64()
	}

	// Time based
	tm := &metrics.TimeBased
	if l, ok := byMonth[current]; ok {
		tm.CurrentMonth = l.period(current)
	}
	if l, ok := byMonth[last]; ok {
		tm.LastMonth = l.period(last)
	}
	tm.RevenueGrowth = mapper.CalculateGrowth(tm.CurrentMonth.Revenue, tm.LastMonth.Revenue)
	tm.ExpenseGrowth = mapper.CalculateGrowth(tm.CurrentMonth.Expense, tm.LastMonth.Expense)
	tm.ProfitGrowth = mapper.CalculateGrowth(tm.CurrentMonth.Profit, tm.LastMonth.Profit)
	tm.YearToDate = ytd.period("")
	for i := range tm.MonthlyTrend {
		if l, ok := byMonth[tm.MonthlyTrend[i].Month]; ok {
			tm.MonthlyTrend[i] = l.period(tm.MonthlyTrend[i].Month)
		}
	}

	// Vehicle based
	summaries := make([]domain.VehicleSummary, 0, len(in.Vehicles))
	vm := &metrics.VehicleBased
	for _, v := range in.Vehicles {
		l, ok := byVehicle[v.ID]
		if !ok || l.count == 0 {
			vm.NoDataCount++
			continue
		}
		p := l.profit()
		switch {
		case p.IsPositive():
			vm.ProfitableCount++
		case p.IsNegative():
			vm.LossCount++
		}
		summaries = append(summaries, domain.VehicleSummary{
			VehicleID:     v.ID.String(),
			VehicleNumber: v.VehicleNumber,
			Revenue:       l.revenue.InexactFloat64(),
			Expense:       l.expense.InexactFloat64(),
			Profit:        p.InexactFloat64(),
		})
	}
	vm.TopByRevenue = rankVehicles(summaries, func(s domain.VehicleSummary) float64 { return s.Revenue }, true)
	vm.BottomByRevenue = rankVehicles(summaries, func(s domain.VehicleSummary) float64 { return s.Revenue }, false)
	vm.TopByProfit = rankVehicles(summaries, func(s domain.VehicleSummary) float64 { return s.Profit }, true)
	vm.BottomByProfit = rankVehicles(summaries, func(s domain.VehicleSummary) float64 { return s.Profit }, false)

	// Customer based
	names := make(map[uuid.UUID]string, len(in.Customers))
	for _, c := range in.Customers {
		names[c.ID] = c.Name
	}
	customers := make([]domain.CustomerRevenue, 0, len(byCustomer))
	for id, l := range byCustomer {
		customers = append(customers, domain.CustomerRevenue{
			CustomerID:       id.String(),
			CustomerName:     names[id],
			Revenue:          l.revenue.InexactFloat64(),
			TransactionCount: l.count,
		})
	}
	sort.SliceStable(customers, func(i, j int) bool {
		if customers[i].Revenue != customers[j].Revenue {
			return customers[i].Revenue > customers[j].Revenue
		}
		return customers[i].CustomerName < customers[j].CustomerName
	})
	if len(customers) > RankingSize {
		customers = customers[:RankingSize]
	}
	metrics.CustomerBased = domain.CustomerMetrics{
		CustomerCount: len(in.Customers),
		TopCustomers:  customers,
	}

	// Category based
	metrics.CategoryBased = domain.CategoryMetrics{
		Revenue: categoryBreakdown(revenueCats, total.revenue, func(l *ledger) decimal.Decimal { return l.revenue }),
		Expense: categoryBreakdown(expenseCats, total.expense, func(l *ledger) decimal.Decimal { return l.expense }),
	}

	return metrics
}

// rankVehicles sorts by key and keeps the first RankingSize entries. Ties
// are broken by vehicle number so rankings are stable.
func rankVehicles(in []domain.VehicleSummary, key func(domain.VehicleSummary) float64, desc bool) []domain.VehicleSummary {
	out := append([]domain.VehicleSummary(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := key(out[i]), key(out[j])
		if a != b {
			if desc {
				return a > b
			}
			return a < b
		}
		return out[i].VehicleNumber < out[j].VehicleNumber
	})
	if len(out) > RankingSize {
		out = out[:RankingSize]
	}
	if out == nil {
		return []domain.VehicleSummary{}
	}
	return out
}

func categoryBreakdown(cats map[string]*ledger, total decimal.Decimal, amount func(*ledger) decimal.Decimal) []domain.CategoryAmount {
	out := make([]domain.CategoryAmount, 0, len(cats))
	for name, l := range cats {
		a := amount(l)
		entry := domain.CategoryAmount{
			Category: name,
			Amount:   a.InexactFloat64(),
			Count:    l.count,
		}
		if total.IsPositive() {
			entry.Percentage = a.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// ComputeVehicleProfitability aggregates one vehicle's transactions. Monthly
// entries are keyed by normalized YYYY-MM and sorted oldest first.
func ComputeVehicleProfitability(vehicle *domain.Vehicle, txs []domain.VehicleTransaction) domain.VehicleProfitability {
	result := EmptyVehicleProfitability(vehicle)

	var total ledger
	byMonth := make(map[string]*ledger)
	revenueCats := make(map[string]*ledger)
	expenseCats := make(map[string]*ledger)

	for i := range txs {
		tx := &txs[i]
		if tx.VehicleID != vehicle.ID {
			continue
		}
		total.add(tx)
		if month := transactionMonth(tx); month != "" {
			l, ok := byMonth[month]
			if !ok {
				l = &ledger{}
				byMonth[month] = l
			}
			l.add(tx)
		}
		cats := expenseCats
		if tx.TransactionType == domain.TransactionTypeRevenue {
			cats = revenueCats
		}
		name := categoryOf(tx)
		l, ok := cats[name]
		if !ok {
			l = &ledger{}
			cats[name] = l
		}
		l.add(tx)
	}

	profit := total.profit()
	result.TotalRevenue = total.revenue.InexactFloat64()
	result.TotalExpense = total.expense.InexactFloat64()
	result.Profit = profit.InexactFloat64()
	result.ProfitMargin = mapper.CalculateMargin(result.Profit, result.TotalRevenue)
	result.TransactionCount = total.count

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	for _, m := range months {
		result.Monthly = append(result.Monthly, byMonth[m].period(m))
	}

	result.RevenueByCategory = categoryBreakdown(revenueCats, total.revenue, func(l *ledger) decimal.Decimal { return l.revenue })
	result.ExpenseByCategory = categoryBreakdown(expenseCats, total.expense, func(l *ledger) decimal.Decimal { return l.expense })
	return result
}

// EmptyVehicleProfitability is the zero breakdown for vehicle
func EmptyVehicleProfitability(vehicle *domain.Vehicle) domain.VehicleProfitability {
	return domain.VehicleProfitability{
		VehicleID:         vehicle.ID.String(),
		VehicleNumber:     vehicle.VehicleNumber,
		Monthly:           []domain.PeriodMetrics{},
		RevenueByCategory: []domain.CategoryAmount{},
		ExpenseByCategory: []domain.CategoryAmount{},
	}
}
