package domain

import "strings"

// RefInput is the nested object form of a foreign key, e.g. {"customer": {"id": "..."}}
type RefInput struct {
	ID string `json:"id"`
}

// ResolveRef normalizes a foreign key given either flat or nested. The flat
// id wins when both are present; blank values resolve to "".
func ResolveRef(flat string, nested *RefInput) string {
	if id := strings.TrimSpace(flat); id != "" {
		return id
	}
	if nested != nil {
		return strings.TrimSpace(nested.ID)
	}
	return ""
}

// CustomerRequest is the payload for creating or replacing a customer
type CustomerRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Company string `json:"company,omitempty" validate:"max=200"`
	Email   string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone   string `json:"phone,omitempty" validate:"max=40"`
	Address string `json:"address,omitempty" validate:"max=500"`
	Notes   string `json:"notes,omitempty"`
}

// VendorRequest is the payload for creating or replacing a vendor
type VendorRequest struct {
	Name              string `json:"name" validate:"required,max=200"`
	ContactPerson     string `json:"contactPerson,omitempty" validate:"max=200"`
	Email             string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone             string `json:"phone,omitempty" validate:"max=40"`
	Address           string `json:"address,omitempty" validate:"max=500"`
	BankName          string `json:"bankName,omitempty" validate:"max=200"`
	BankAccountNumber string `json:"bankAccountNumber,omitempty" validate:"max=50"`
	BankCode          string `json:"bankCode,omitempty" validate:"max=50"`
	PaymentTerms      string `json:"paymentTerms,omitempty" validate:"max=200"`
	Notes             string `json:"notes,omitempty"`
}

// EmployeeRequest is the payload for creating or replacing an employee
type EmployeeRequest struct {
	Name        string      `json:"name" validate:"required,max=200"`
	EmployeeID  string      `json:"employeeId" validate:"required,max=50"`
	Email       string      `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone       string      `json:"phone,omitempty" validate:"max=40"`
	Role        string      `json:"role,omitempty" validate:"max=100"`
	Department  string      `json:"department,omitempty" validate:"max=100"`
	PaymentType PaymentType `json:"paymentType,omitempty" validate:"omitempty,oneof=salary hourly"`
	HourlyRate  float64     `json:"hourlyRate" validate:"gte=0"`
	Salary      float64     `json:"salary" validate:"gte=0"`
	JoinDate    string      `json:"joinDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status      string      `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// VehicleRequest is the payload for creating or replacing a vehicle
type VehicleRequest struct {
	VehicleNumber string        `json:"vehicleNumber" validate:"required,max=50"`
	VehicleType   string        `json:"vehicleType,omitempty" validate:"max=100"`
	Make          string        `json:"make,omitempty" validate:"max=100"`
	Model         string        `json:"model,omitempty" validate:"max=100"`
	Year          int           `json:"year,omitempty" validate:"gte=0,lte=2200"`
	BasePrice     float64       `json:"basePrice" validate:"gte=0"`
	Status        VehicleStatus `json:"status,omitempty" validate:"omitempty,oneof=available rented maintenance retired"`
	Notes         string        `json:"notes,omitempty"`
}

// LineItemRequest is one document line as sent by the form. Derived amounts
// are never read from the caller.
type LineItemRequest struct {
	VehicleID     string    `json:"vehicleId,omitempty"`
	VehicleTypeID string    `json:"vehicleTypeId,omitempty"`
	Vehicle       *RefInput `json:"vehicle,omitempty"`
	Description   string    `json:"description,omitempty" validate:"max=1000"`
	Quantity      float64   `json:"quantity"`
	UnitPrice     float64   `json:"unitPrice"`
	TaxPercent    float64   `json:"taxPercent"`
}

// VehicleRef resolves the vehicle from any of the accepted spellings
func (l LineItemRequest) VehicleRef() string {
	if id := ResolveRef(l.VehicleID, l.Vehicle); id != "" {
		return id
	}
	return strings.TrimSpace(l.VehicleTypeID)
}

// QuoteRequest is the payload for creating or replacing a quote
type QuoteRequest struct {
	Number     string            `json:"number" validate:"required,max=50"`
	Date       string            `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ValidUntil string            `json:"validUntil,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Currency   string            `json:"currency,omitempty" validate:"omitempty,len=3"`
	CustomerID string            `json:"customerId,omitempty"`
	Customer   *RefInput         `json:"customer,omitempty"`
	Status     QuoteStatus       `json:"status,omitempty" validate:"omitempty,oneof=draft sent accepted rejected"`
	Terms      string            `json:"terms,omitempty"`
	Notes      string            `json:"notes,omitempty"`
	Items      []LineItemRequest `json:"items" validate:"dive"`
}

// PurchaseOrderRequest is the payload for creating or replacing a purchase order
type PurchaseOrderRequest struct {
	Number       string              `json:"number" validate:"required,max=50"`
	Date         string              `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DeliveryDate string              `json:"deliveryDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Currency     string              `json:"currency,omitempty" validate:"omitempty,len=3"`
	VendorID     string              `json:"vendorId,omitempty"`
	Vendor       *RefInput           `json:"vendor,omitempty"`
	Status       PurchaseOrderStatus `json:"status,omitempty" validate:"omitempty,oneof=draft sent received cancelled"`
	Terms        string              `json:"terms,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	Items        []LineItemRequest   `json:"items" validate:"dive"`
}

// InvoiceRequest is the payload for creating or replacing an invoice.
// A non-nil Tax sets a manual tax override; omitting it clears any override.
type InvoiceRequest struct {
	Number          string            `json:"number" validate:"required,max=50"`
	Date            string            `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DueDate         string            `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Currency        string            `json:"currency,omitempty" validate:"omitempty,len=3"`
	CustomerID      string            `json:"customerId,omitempty"`
	Customer        *RefInput         `json:"customer,omitempty"`
	VendorID        string            `json:"vendorId,omitempty"`
	Vendor          *RefInput         `json:"vendor,omitempty"`
	PurchaseOrderID string            `json:"purchaseOrderId,omitempty"`
	PurchaseOrder   *RefInput         `json:"purchaseOrder,omitempty"`
	QuoteID         string            `json:"quoteId,omitempty"`
	Quote           *RefInput         `json:"quote,omitempty"`
	Tax             *float64          `json:"tax,omitempty" validate:"omitempty,gte=0"`
	AmountReceived  float64           `json:"amountReceived" validate:"gte=0"`
	Status          InvoiceStatus     `json:"status,omitempty" validate:"omitempty,oneof=draft invoice_sent payment_received"`
	Terms           string            `json:"terms,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Items           []LineItemRequest `json:"items" validate:"dive"`
}

// PayslipRequest is the payload for creating or replacing a payslip
type PayslipRequest struct {
	EmployeeID    string        `json:"employeeId,omitempty"`
	Employee      *RefInput     `json:"employee,omitempty"`
	Month         int           `json:"month" validate:"required,gte=1,lte=12"`
	Year          int           `json:"year" validate:"required,gte=1900,lte=2200"`
	BaseSalary    float64       `json:"baseSalary" validate:"gte=0"`
	HoursWorked   float64       `json:"hoursWorked" validate:"gte=0"`
	OvertimeHours float64       `json:"overtimeHours" validate:"gte=0"`
	OvertimeRate  float64       `json:"overtimeRate" validate:"gte=0"`
	Allowances    float64       `json:"allowances" validate:"gte=0"`
	Deductions    float64       `json:"deductions" validate:"gte=0"`
	Status        PayslipStatus `json:"status,omitempty" validate:"omitempty,oneof=draft approved paid"`
	PaymentDate   string        `json:"paymentDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         string        `json:"notes,omitempty"`
}

// VehicleTransactionRequest is the payload for creating or replacing a vehicle transaction
type VehicleTransactionRequest struct {
	VehicleID       string          `json:"vehicleId,omitempty"`
	Vehicle         *RefInput       `json:"vehicle,omitempty"`
	TransactionType TransactionType `json:"transactionType" validate:"required,oneof=revenue expense"`
	Category        string          `json:"category,omitempty" validate:"max=100"`
	Amount          float64         `json:"amount"`
	Date            string          `json:"date" validate:"required"`
	Description     string          `json:"description,omitempty"`
	EmployeeID      string          `json:"employeeId,omitempty"`
	InvoiceID       string          `json:"invoiceId,omitempty"`
	PurchaseOrderID string          `json:"purchaseOrderId,omitempty"`
	QuoteID         string          `json:"quoteId,omitempty"`
}

// ExpenseCategoryRequest is the payload for creating or renaming a custom category
type ExpenseCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// AdminSettingsRequest updates the settings row. Nil fields keep their
// current value.
type AdminSettingsRequest struct {
	CompanyName            *string `json:"companyName,omitempty" validate:"omitempty,max=200"`
	CompanyAddress         *string `json:"companyAddress,omitempty" validate:"omitempty,max=500"`
	CompanyEmail           *string `json:"companyEmail,omitempty" validate:"omitempty,max=254"`
	CompanyPhone           *string `json:"companyPhone,omitempty" validate:"omitempty,max=40"`
	TaxID                  *string `json:"taxId,omitempty" validate:"omitempty,max=50"`
	Currency               *string `json:"currency,omitempty" validate:"omitempty,len=3"`
	QuoteNumberPattern     *string `json:"quoteNumberPattern,omitempty" validate:"omitempty,max=50"`
	InvoiceNumberPattern   *string `json:"invoiceNumberPattern,omitempty" validate:"omitempty,max=50"`
	PONumberPattern        *string `json:"poNumberPattern,omitempty" validate:"omitempty,max=50"`
	ShowRevenue            *bool   `json:"showRevenue,omitempty"`
	ShowExpenses           *bool   `json:"showExpenses,omitempty"`
	ShowProfit             *bool   `json:"showProfit,omitempty"`
	ShowMonthlyTrend       *bool   `json:"showMonthlyTrend,omitempty"`
	ShowVehiclePerformance *bool   `json:"showVehiclePerformance,omitempty"`
	ShowCustomerRevenue    *bool   `json:"showCustomerRevenue,omitempty"`
	ShowCategoryBreakdown  *bool   `json:"showCategoryBreakdown,omitempty"`
}

// DeleteModulesRequest names the data modules to purge
type DeleteModulesRequest struct {
	Modules []string `json:"modules" validate:"required,min=1"`
}
