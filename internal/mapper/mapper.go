package mapper

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
)

const timestampLayout = "2006-01-02T15:04:05Z"

// FormatTimestamp renders t as ISO-8601 UTC
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func optionalID(id *uuid.UUID) *string {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	s := id.String()
	return &s
}

// ToCustomerDTO converts Customer to CustomerDTO
func ToCustomerDTO(customer *domain.Customer) domain.CustomerDTO {
	return domain.CustomerDTO{
		ID:        customer.ID.String(),
		Name:      customer.Name,
		Company:   customer.Company,
		Email:     customer.Email,
		Phone:     customer.Phone,
		Address:   customer.Address,
		Notes:     customer.Notes,
		CreatedAt: FormatTimestamp(customer.CreatedAt),
		UpdatedAt: FormatTimestamp(customer.UpdatedAt),
	}
}

// ToVendorDTO converts Vendor to VendorDTO
func ToVendorDTO(vendor *domain.Vendor) domain.VendorDTO {
	return domain.VendorDTO{
		ID:                vendor.ID.String(),
		Name:              vendor.Name,
		ContactPerson:     vendor.ContactPerson,
		Email:             vendor.Email,
		Phone:             vendor.Phone,
		Address:           vendor.Address,
		BankName:          vendor.BankName,
		BankAccountNumber: vendor.BankAccountNumber,
		BankCode:          vendor.BankCode,
		PaymentTerms:      vendor.PaymentTerms,
		Notes:             vendor.Notes,
		CreatedAt:         FormatTimestamp(vendor.CreatedAt),
		UpdatedAt:         FormatTimestamp(vendor.UpdatedAt),
	}
}

// ToEmployeeDTO converts Employee to EmployeeDTO
func ToEmployeeDTO(employee *domain.Employee) domain.EmployeeDTO {
	return domain.EmployeeDTO{
		ID:          employee.ID.String(),
		Name:        employee.Name,
		EmployeeID:  employee.EmployeeID,
		Email:       employee.Email,
		Phone:       employee.Phone,
		Role:        employee.Role,
		Department:  employee.Department,
		PaymentType: employee.PaymentType,
		HourlyRate:  employee.HourlyRate,
		Salary:      employee.Salary,
		JoinDate:    employee.JoinDate,
		Status:      employee.Status,
		CreatedAt:   FormatTimestamp(employee.CreatedAt),
		UpdatedAt:   FormatTimestamp(employee.UpdatedAt),
	}
}

// ToVehicleDTO converts Vehicle to VehicleDTO
func ToVehicleDTO(vehicle *domain.Vehicle) domain.VehicleDTO {
	return domain.VehicleDTO{
		ID:            vehicle.ID.String(),
		VehicleNumber: vehicle.VehicleNumber,
		VehicleType:   vehicle.VehicleType,
		Make:          vehicle.Make,
		Model:         vehicle.Model,
		Year:          vehicle.Year,
		BasePrice:     vehicle.BasePrice,
		Status:        vehicle.Status,
		Notes:         vehicle.Notes,
		CreatedAt:     FormatTimestamp(vehicle.CreatedAt),
		UpdatedAt:     FormatTimestamp(vehicle.UpdatedAt),
	}
}

func toLineItemDTO(item *domain.LineItem, vehicleID *uuid.UUID) domain.LineItemDTO {
	return domain.LineItemDTO{
		ID:            item.ID.String(),
		SerialNumber:  item.SerialNumber,
		VehicleID:     optionalID(vehicleID),
		Description:   item.Description,
		Quantity:      item.Quantity,
		UnitPrice:     item.UnitPrice,
		TaxPercent:    item.TaxPercent,
		GrossAmount:   item.GrossAmount,
		LineTaxAmount: item.LineTaxAmount,
		LineTotal:     item.LineTotal,
	}
}

// ToQuoteDTO converts Quote to QuoteDTO, including its items in serial order
func ToQuoteDTO(quote *domain.Quote) domain.QuoteDTO {
	items := make([]domain.LineItemDTO, 0, len(quote.Items))
	for i := range quote.Items {
		items = append(items, toLineItemDTO(&quote.Items[i].LineItem, quote.Items[i].VehicleID))
	}

	dto := domain.QuoteDTO{
		ID:         quote.ID.String(),
		Number:     quote.Number,
		Date:       quote.Date,
		ValidUntil: quote.ValidUntil,
		Currency:   quote.Currency,
		CustomerID: quote.CustomerID.String(),
		SubTotal:   quote.SubTotal,
		TotalTax:   quote.TotalTax,
		Total:      quote.Total,
		Status:     quote.Status,
		Terms:      quote.Terms,
		Notes:      quote.Notes,
		Items:      items,
		CreatedAt:  FormatTimestamp(quote.CreatedAt),
		UpdatedAt:  FormatTimestamp(quote.UpdatedAt),
	}
	if quote.Customer != nil {
		dto.CustomerName = quote.Customer.Name
	}
	return dto
}

// ToPurchaseOrderDTO converts PurchaseOrder to PurchaseOrderDTO
func ToPurchaseOrderDTO(po *domain.PurchaseOrder) domain.PurchaseOrderDTO {
	items := make([]domain.LineItemDTO, 0, len(po.Items))
	for i := range po.Items {
		items = append(items, toLineItemDTO(&po.Items[i].LineItem, nil))
	}

	dto := domain.PurchaseOrderDTO{
		ID:           po.ID.String(),
		Number:       po.Number,
		Date:         po.Date,
		DeliveryDate: po.DeliveryDate,
		Currency:     po.Currency,
		VendorID:     po.VendorID.String(),
		SubTotal:     po.SubTotal,
		TotalTax:     po.TotalTax,
		Total:        po.Total,
		Status:       po.Status,
		Terms:        po.Terms,
		Notes:        po.Notes,
		Items:        items,
		CreatedAt:    FormatTimestamp(po.CreatedAt),
		UpdatedAt:    FormatTimestamp(po.UpdatedAt),
	}
	if po.Vendor != nil {
		dto.VendorName = po.Vendor.Name
	}
	return dto
}

// ToInvoiceDTO converts Invoice to InvoiceDTO and derives the balance due
func ToInvoiceDTO(invoice *domain.Invoice) domain.InvoiceDTO {
	items := make([]domain.LineItemDTO, 0, len(invoice.Items))
	for i := range invoice.Items {
		items = append(items, toLineItemDTO(&invoice.Items[i].LineItem, invoice.Items[i].VehicleID))
	}

	dto := domain.InvoiceDTO{
		ID:              invoice.ID.String(),
		Number:          invoice.Number,
		Date:            invoice.Date,
		DueDate:         invoice.DueDate,
		Currency:        invoice.Currency,
		CustomerID:      invoice.CustomerID.String(),
		VendorID:        optionalID(invoice.VendorID),
		PurchaseOrderID: optionalID(invoice.PurchaseOrderID),
		QuoteID:         optionalID(invoice.QuoteID),
		SubTotal:        invoice.SubTotal,
		Tax:             invoice.Tax,
		TaxOverridden:   invoice.TaxOverride != nil,
		Total:           invoice.Total,
		AmountReceived:  invoice.AmountReceived,
		BalanceDue:      BalanceDue(invoice.Total, invoice.AmountReceived),
		Status:          invoice.Status,
		Terms:           invoice.Terms,
		Notes:           invoice.Notes,
		Items:           items,
		CreatedAt:       FormatTimestamp(invoice.CreatedAt),
		UpdatedAt:       FormatTimestamp(invoice.UpdatedAt),
	}
	if invoice.Customer != nil {
		dto.CustomerName = invoice.Customer.Name
	}
	return dto
}

// ToPayslipDTO converts Payslip to PayslipDTO
func ToPayslipDTO(payslip *domain.Payslip) domain.PayslipDTO {
	dto := domain.PayslipDTO{
		ID:            payslip.ID.String(),
		EmployeeID:    payslip.EmployeeID.String(),
		Month:         payslip.Month,
		Year:          payslip.Year,
		Period:        fmt.Sprintf("%04d-%02d", payslip.Year, payslip.Month),
		BaseSalary:    payslip.BaseSalary,
		HoursWorked:   payslip.HoursWorked,
		OvertimeHours: payslip.OvertimeHours,
		OvertimeRate:  payslip.OvertimeRate,
		OvertimePay:   payslip.OvertimePay,
		Allowances:    payslip.Allowances,
		Deductions:    payslip.Deductions,
		NetPay:        payslip.NetPay,
		Status:        payslip.Status,
		PaymentDate:   payslip.PaymentDate,
		Notes:         payslip.Notes,
		CreatedAt:     FormatTimestamp(payslip.CreatedAt),
		UpdatedAt:     FormatTimestamp(payslip.UpdatedAt),
	}
	if payslip.Employee != nil {
		dto.EmployeeName = payslip.Employee.Name
	}
	return dto
}

// ToVehicleTransactionDTO converts VehicleTransaction to VehicleTransactionDTO
func ToVehicleTransactionDTO(tx *domain.VehicleTransaction) domain.VehicleTransactionDTO {
	return domain.VehicleTransactionDTO{
		ID:              tx.ID.String(),
		VehicleID:       tx.VehicleID.String(),
		TransactionType: tx.TransactionType,
		Category:        tx.Category,
		Amount:          tx.Amount,
		Date:            tx.Date,
		Month:           tx.Month,
		Description:     tx.Description,
		EmployeeID:      optionalID(tx.EmployeeID),
		InvoiceID:       optionalID(tx.InvoiceID),
		PurchaseOrderID: optionalID(tx.PurchaseOrderID),
		QuoteID:         optionalID(tx.QuoteID),
		CreatedAt:       FormatTimestamp(tx.CreatedAt),
		UpdatedAt:       FormatTimestamp(tx.UpdatedAt),
	}
}

// ToExpenseCategoryDTO converts ExpenseCategory to ExpenseCategoryDTO
func ToExpenseCategoryDTO(category *domain.ExpenseCategory) domain.ExpenseCategoryDTO {
	return domain.ExpenseCategoryDTO{
		ID:          category.ID.String(),
		Name:        category.Name,
		Description: category.Description,
		IsCustom:    category.IsCustom,
		CreatedAt:   FormatTimestamp(category.CreatedAt),
		UpdatedAt:   FormatTimestamp(category.UpdatedAt),
	}
}

// ToAdminSettingsDTO converts AdminSettings to AdminSettingsDTO
func ToAdminSettingsDTO(s *domain.AdminSettings) domain.AdminSettingsDTO {
	return domain.AdminSettingsDTO{
		CompanyName:            s.CompanyName,
		CompanyAddress:         s.CompanyAddress,
		CompanyEmail:           s.CompanyEmail,
		CompanyPhone:           s.CompanyPhone,
		TaxID:                  s.TaxID,
		Currency:               s.Currency,
		HasLogo:                s.LogoPath != "",
		QuoteNumberPattern:     s.QuoteNumberPattern,
		InvoiceNumberPattern:   s.InvoiceNumberPattern,
		PONumberPattern:        s.PONumberPattern,
		ShowRevenue:            s.ShowRevenue,
		ShowExpenses:           s.ShowExpenses,
		ShowProfit:             s.ShowProfit,
		ShowMonthlyTrend:       s.ShowMonthlyTrend,
		ShowVehiclePerformance: s.ShowVehiclePerformance,
		ShowCustomerRevenue:    s.ShowCustomerRevenue,
		ShowCategoryBreakdown:  s.ShowCategoryBreakdown,
		UpdatedAt:              FormatTimestamp(s.UpdatedAt),
	}
}

// CalculateMargin returns profit as a percentage of revenue, 0 without revenue
func CalculateMargin(profit, revenue float64) float64 {
	if revenue == 0 {
		return 0
	}
	return (profit / revenue) * 100
}

// CalculateGrowth returns the percentage change from previous to current, 0
// when there is no previous value
func CalculateGrowth(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return ((current - previous) / previous) * 100
}
