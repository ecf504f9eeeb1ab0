package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/mapper"
	"github.com/imanage/imanage-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaintenanceService seeds demo data and purges whole data modules
type MaintenanceService struct {
	repo   *repository.MaintenanceRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewMaintenanceService(repo *repository.MaintenanceRepository, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// SetClock overrides the time source used for demo dates
func (s *MaintenanceService) SetClock(now func() time.Time) {
	s.now = now
}

// DeleteModules purges the named modules and every module they imply.
// Nothing is deleted when any step fails.
func (s *MaintenanceService) DeleteModules(ctx context.Context, req *domain.DeleteModulesRequest) (*domain.ModuleDeletionResult, error) {
	modules, err := repository.ParseModules(req.Modules)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteModules(ctx, modules)
	if err != nil {
		return nil, fmt.Errorf("failed to delete modules: %w", err)
	}

	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = string(m)
	}
	s.logger.Warn("Data modules deleted",
		zap.Strings("modules", names),
		zap.Any("rows_deleted", deleted),
	)
	return &domain.ModuleDeletionResult{Modules: names, RowsDeleted: deleted}, nil
}

type demoVehicle struct {
	kind, make, model string
	year              int
	price             float64
}

var demoVehicles = []demoVehicle{
	{"Sedan", "Toyota", "Camry", 2022, 65},
	{"SUV", "Ford", "Explorer", 2023, 95},
	{"Van", "Mercedes-Benz", "Sprinter", 2021, 140},
	{"Pickup", "Chevrolet", "Silverado", 2022, 110},
}

var demoCustomers = []domain.Customer{
	{Name: "Ava Martinez", Company: "Martinez Events", Email: "ava@martinez-events.example", Address: "12 Harbor Way, Oakland, CA"},
	{Name: "Noah Chen", Company: "Chen Logistics", Email: "noah@chenlogistics.example", Address: "88 Market St, San Jose, CA"},
	{Name: "Mia Johnson", Company: "", Email: "mia.johnson@example.com", Address: "5 Elm Ct, Palo Alto, CA"},
}

var demoVendors = []domain.Vendor{
	{Name: "Bay Auto Parts", ContactPerson: "Leo Park", Email: "sales@bayautoparts.example", PaymentTerms: "Net 30"},
	{Name: "Pacific Fuel Co", ContactPerson: "Emma Ruiz", Email: "billing@pacificfuel.example", PaymentTerms: "Net 15"},
}

var demoEmployees = []domain.Employee{
	{Name: "Liam Scott", Role: "Driver", Department: "Operations", PaymentType: domain.PaymentTypeHourly, HourlyRate: 28},
	{Name: "Sofia Patel", Role: "Fleet Manager", Department: "Operations", PaymentType: domain.PaymentTypeSalary, Salary: 5200},
}

// SeedDemoData inserts a small, internally consistent data set: customers,
// vendors, employees and vehicles plus quotes, purchase orders, invoices,
// payslips and six months of vehicle transactions. Identifiers carry a
// per-run tag so repeated seeding never collides with earlier rows.
func (s *MaintenanceService) SeedDemoData(ctx context.Context) (*domain.DemoDataResult, error) {
	now := s.now()
	tag := strings.ToUpper(uuid.NewString()[:4])
	result := &domain.DemoDataResult{}

	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		customers := make([]domain.Customer, len(demoCustomers))
		for i, c := range demoCustomers {
			c.Phone = fmt.Sprintf("+1 650 253 00%02d", 10+i)
			customers[i] = c
			if err := tx.Create(&customers[i]).Error; err != nil {
				return fmt.Errorf("customer: %w", err)
			}
		}
		result.Customers = len(customers)

		vendors := make([]domain.Vendor, len(demoVendors))
		for i, v := range demoVendors {
			v.Phone = fmt.Sprintf("+1 650 253 00%02d", 20+i)
			vendors[i] = v
			if err := tx.Create(&vendors[i]).Error; err != nil {
				return fmt.Errorf("vendor: %w", err)
			}
		}
		result.Vendors = len(vendors)

		employees := make([]domain.Employee, len(demoEmployees))
		for i, e := range demoEmployees {
			e.EmployeeID = fmt.Sprintf("EMP-%s-%02d", tag, i+1)
			e.Phone = fmt.Sprintf("+1 650 253 00%02d", 30+i)
			e.JoinDate = now.AddDate(-1, 0, 0).Format(mapper.DateLayout)
			e.Status = "active"
			employees[i] = e
			if err := tx.Create(&employees[i]).Error; err != nil {
				return fmt.Errorf("employee: %w", err)
			}
		}
		result.Employees = len(employees)

		vehicles := make([]domain.Vehicle, len(demoVehicles))
		for i, v := range demoVehicles {
			vehicles[i] = domain.Vehicle{
				VehicleNumber: fmt.Sprintf("DV-%s-%02d", tag, i+1),
				VehicleType:   v.kind,
				Make:          v.make,
				Model:         v.model,
				Year:          v.year,
				BasePrice:     v.price,
				Status:        domain.VehicleStatusAvailable,
			}
			if err := tx.Create(&vehicles[i]).Error; err != nil {
				return fmt.Errorf("vehicle: %w", err)
			}
		}
		result.Vehicles = len(vehicles)

		today := now.Format(mapper.DateLayout)
		_, validUntil := documentDates(today, "", 30, now)
		_, dueDate := documentDates(today, "", 30, now)
		_, deliveryDate := documentDates(today, "", 14, now)

		var invoices []domain.Invoice
		for i, c := range customers {
			v := vehicles[i%len(vehicles)]
			reqs := []domain.LineItemRequest{
				{VehicleID: v.ID.String(), Description: fmt.Sprintf("%s %s rental, 5 days", v.Make, v.Model), Quantity: 5, UnitPrice: v.BasePrice, TaxPercent: 8.5},
				{Description: "Delivery and pickup", Quantity: 1, UnitPrice: 45, TaxPercent: 0},
			}
			lines, err := buildLines(reqs)
			if err != nil {
				return err
			}

			quote := domain.Quote{
				Number:     fmt.Sprintf("QT-%s-%03d", tag, i+1),
				Date:       today,
				ValidUntil: validUntil,
				Currency:   defaultCurrency,
				CustomerID: c.ID,
				SubTotal:   lines.Totals.SubTotal,
				TotalTax:   lines.Totals.TotalTax,
				Total:      lines.Totals.Total,
				Status:     domain.QuoteStatusAccepted,
			}
			if err := tx.Omit(clause.Associations).Create(&quote).Error; err != nil {
				return fmt.Errorf("quote: %w", err)
			}
			quoteItems := make([]domain.QuoteItem, len(lines.Items))
			for j := range lines.Items {
				quoteItems[j] = domain.QuoteItem{LineItem: lines.Items[j], QuoteID: quote.ID, VehicleID: lines.VehicleIDs[j]}
			}
			if err := tx.Create(&quoteItems).Error; err != nil {
				return fmt.Errorf("quote items: %w", err)
			}
			result.Quotes++

			status := domain.InvoiceStatusSent
			received := 0.0
			if i == 0 {
				status = domain.InvoiceStatusPaymentReceived
				received = lines.Totals.Total
			}
			quoteID := quote.ID
			invoice := domain.Invoice{
				Number:         fmt.Sprintf("INV-%s-%03d", tag, i+1),
				Date:           today,
				DueDate:        dueDate,
				Currency:       defaultCurrency,
				CustomerID:     c.ID,
				QuoteID:        &quoteID,
				SubTotal:       lines.Totals.SubTotal,
				Tax:            lines.Totals.TotalTax,
				Total:          lines.Totals.Total,
				AmountReceived: received,
				Status:         status,
			}
			if err := tx.Omit(clause.Associations).Create(&invoice).Error; err != nil {
				return fmt.Errorf("invoice: %w", err)
			}
			invoiceItems := make([]domain.InvoiceItem, len(lines.Items))
			for j := range lines.Items {
				item := lines.Items[j]
				item.ID = uuid.Nil
				invoiceItems[j] = domain.InvoiceItem{LineItem: item, InvoiceID: invoice.ID, VehicleID: lines.VehicleIDs[j]}
			}
			if err := tx.Create(&invoiceItems).Error; err != nil {
				return fmt.Errorf("invoice items: %w", err)
			}
			invoices = append(invoices, invoice)
			result.Invoices++
		}

		var orders []domain.PurchaseOrder
		for i, vendor := range vendors {
			reqs := []domain.LineItemRequest{
				{Description: "Brake pads, front axle", Quantity: 4, UnitPrice: 62.5, TaxPercent: 8.5},
				{Description: "Synthetic oil 5W-30, 5qt", Quantity: 6, UnitPrice: 31, TaxPercent: 8.5},
			}
			if i == 1 {
				reqs = []domain.LineItemRequest{{Description: "Fleet fuel card top-up", Quantity: 1, UnitPrice: 1200}}
			}
			lines, err := buildLines(reqs)
			if err != nil {
				return err
			}
			po := domain.PurchaseOrder{
				Number:       fmt.Sprintf("PO-%s-%03d", tag, i+1),
				Date:         today,
				DeliveryDate: deliveryDate,
				Currency:     defaultCurrency,
				VendorID:     vendor.ID,
				SubTotal:     lines.Totals.SubTotal,
				TotalTax:     lines.Totals.TotalTax,
				Total:        lines.Totals.Total,
				Status:       domain.PurchaseOrderStatusSent,
			}
			if err := tx.Omit(clause.Associations).Create(&po).Error; err != nil {
				return fmt.Errorf("purchase order: %w", err)
			}
			poItems := make([]domain.POItem, len(lines.Items))
			for j := range lines.Items {
				poItems[j] = domain.POItem{LineItem: lines.Items[j], PurchaseOrderID: po.ID}
			}
			if err := tx.Create(&poItems).Error; err != nil {
				return fmt.Errorf("purchase order items: %w", err)
			}
			orders = append(orders, po)
			result.PurchaseOrders++
		}

		lastMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		for _, e := range employees {
			pay := ComputePay(&e, &domain.PayslipRequest{BaseSalary: e.Salary, HoursWorked: 160, OvertimeHours: 6, OvertimeRate: 42, Allowances: 150, Deductions: 80})
			payslip := domain.Payslip{
				EmployeeID:    e.ID,
				Month:         int(lastMonth.Month()),
				Year:          lastMonth.Year(),
				BaseSalary:    pay.BaseSalary,
				HoursWorked:   160,
				OvertimeHours: 6,
				OvertimeRate:  42,
				OvertimePay:   pay.OvertimePay,
				Allowances:    150,
				Deductions:    80,
				NetPay:        pay.NetPay,
				Status:        domain.PayslipStatusPaid,
				PaymentDate:   lastMonth.AddDate(0, 1, -1).Format(mapper.DateLayout),
			}
			if err := tx.Omit(clause.Associations).Create(&payslip).Error; err != nil {
				return fmt.Errorf("payslip: %w", err)
			}
			result.Payslips++
		}

		txs := demoTransactions(now, vehicles, employees, invoices, orders)
		if len(txs) > 0 {
			if err := tx.Create(&txs).Error; err != nil {
				return fmt.Errorf("vehicle transactions: %w", err)
			}
		}
		result.VehicleTransactions = len(txs)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed demo data: %w", err)
	}

	s.logger.Info("Demo data seeded",
		zap.String("tag", tag),
		zap.Int("vehicles", result.Vehicles),
		zap.Int("transactions", result.VehicleTransactions),
	)
	return result, nil
}

// demoTransactions books revenue and expenses for every vehicle over the six
// months ending with now. Dates never fall after now.
func demoTransactions(now time.Time, vehicles []domain.Vehicle, employees []domain.Employee, invoices []domain.Invoice, orders []domain.PurchaseOrder) []domain.VehicleTransaction {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	var out []domain.VehicleTransaction

	for m := 5; m >= 0; m-- {
		monthStart := first.AddDate(0, -m, 0)
		for i, v := range vehicles {
			day := monthStart.AddDate(0, 0, 2+i*3)
			if day.After(now) {
				day = monthStart
			}
			date := day.Format(mapper.DateLayout)
			month := mapper.MonthOfDate(date)

			revenue := domain.VehicleTransaction{
				VehicleID:       v.ID,
				TransactionType: domain.TransactionTypeRevenue,
				Category:        DefaultRevenueCategory,
				Amount:          v.BasePrice * float64(8+(i+m)%5),
				Date:            date,
				Month:           month,
				Description:     fmt.Sprintf("%s rentals", v.VehicleNumber),
			}
			if m == 0 && i < len(invoices) {
				id := invoices[i].ID
				revenue.InvoiceID = &id
			}
			out = append(out, revenue)

			fuel := domain.VehicleTransaction{
				VehicleID:       v.ID,
				TransactionType: domain.TransactionTypeExpense,
				Category:        "Fuel",
				Amount:          90 + float64(15*((i+m)%4)),
				Date:            date,
				Month:           month,
				Description:     "Fuel",
			}
			if len(employees) > 0 {
				id := employees[i%len(employees)].ID
				fuel.EmployeeID = &id
			}
			out = append(out, fuel)

			if (i+m)%3 == 0 {
				maint := domain.VehicleTransaction{
					VehicleID:       v.ID,
					TransactionType: domain.TransactionTypeExpense,
					Category:        "Maintenance",
					Amount:          250 + float64(40*i),
					Date:            date,
					Month:           month,
					Description:     "Scheduled service",
				}
				if len(orders) > 0 {
					id := orders[0].ID
					maint.PurchaseOrderID = &id
				}
				out = append(out, maint)
			}
		}
	}
	return out
}
