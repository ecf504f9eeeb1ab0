package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel carries the primary key and timestamps shared by all top-level records.
// SQLite has no uuid generator, so ids are assigned in BeforeCreate.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns a new id when none is set
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// PrimaryKey returns the record id
func (b BaseModel) PrimaryKey() uuid.UUID {
	return b.ID
}

// Customer is a buyer referenced by quotes and invoices
type Customer struct {
	BaseModel
	Name    string `gorm:"not null"`
	Company string
	Email   string
	Phone   string
	Address string
	Notes   string
}

// Vendor is a supplier referenced by purchase orders and invoices
type Vendor struct {
	BaseModel
	Name              string `gorm:"not null"`
	ContactPerson     string
	Email             string
	Phone             string
	Address           string
	BankName          string
	BankAccountNumber string
	BankCode          string
	PaymentTerms      string
	Notes             string
}

// PaymentType determines how an employee's base pay is computed
type PaymentType string

const (
	PaymentTypeSalary PaymentType = "salary"
	PaymentTypeHourly PaymentType = "hourly"
)

// Employee is a staff member; payslips and vehicle transactions may reference one
type Employee struct {
	BaseModel
	Name        string `gorm:"not null"`
	EmployeeID  string `gorm:"column:employee_id;not null"`
	Email       string
	Phone       string
	Role        string
	Department  string
	PaymentType PaymentType `gorm:"not null;default:salary"`
	HourlyRate  float64
	Salary      float64
	JoinDate    string
	Status      string
}

// VehicleStatus represents the availability of a fleet vehicle
type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusRented      VehicleStatus = "rented"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusRetired     VehicleStatus = "retired"
)

// Vehicle is a fleet unit that can be quoted, invoiced and tracked financially
type Vehicle struct {
	BaseModel
	VehicleNumber string `gorm:"not null"`
	VehicleType   string
	Make          string
	Model         string
	Year          int
	BasePrice     float64
	Status        VehicleStatus `gorm:"not null;default:available"`
	Notes         string
}

// LineItem holds the fields common to every document line. The derived
// amounts are always recomputed from Quantity, UnitPrice and TaxPercent.
type LineItem struct {
	ID            uuid.UUID `gorm:"type:text;primaryKey"`
	SerialNumber  int       `gorm:"not null"`
	Description   string
	Quantity      float64
	UnitPrice     float64
	TaxPercent    float64
	GrossAmount   float64
	LineTaxAmount float64
	LineTotal     float64
}

// BeforeCreate assigns a new id when none is set
func (l *LineItem) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// QuoteStatus represents the lifecycle of a quotation
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// Quote is a priced offer to a customer
type Quote struct {
	BaseModel
	Number     string    `gorm:"not null"`
	Date       string    `gorm:"not null"`
	ValidUntil string    `gorm:"not null"`
	Currency   string    `gorm:"not null;default:USD"`
	CustomerID uuid.UUID `gorm:"type:text;not null"`
	Customer   *Customer `gorm:"foreignKey:CustomerID"`
	SubTotal   float64
	TotalTax   float64
	Total      float64
	Status     QuoteStatus `gorm:"not null;default:draft"`
	Terms      string
	Notes      string
	Items      []QuoteItem `gorm:"foreignKey:QuoteID"`
}

// QuoteItem is one line of a quote, optionally priced from a vehicle
type QuoteItem struct {
	LineItem
	QuoteID   uuid.UUID  `gorm:"type:text;not null"`
	VehicleID *uuid.UUID `gorm:"type:text"`
}

// PurchaseOrderStatus represents the lifecycle of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderStatusSent      PurchaseOrderStatus = "sent"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// PurchaseOrder is an order placed with a vendor
type PurchaseOrder struct {
	BaseModel
	Number       string    `gorm:"not null"`
	Date         string    `gorm:"not null"`
	DeliveryDate string    `gorm:"not null"`
	Currency     string    `gorm:"not null;default:USD"`
	VendorID     uuid.UUID `gorm:"type:text;not null"`
	Vendor       *Vendor   `gorm:"foreignKey:VendorID"`
	SubTotal     float64
	TotalTax     float64
	Total        float64
	Status       PurchaseOrderStatus `gorm:"not null;default:draft"`
	Terms        string
	Notes        string
	Items        []POItem `gorm:"foreignKey:PurchaseOrderID"`
}

// POItem is one line of a purchase order
type POItem struct {
	LineItem
	PurchaseOrderID uuid.UUID `gorm:"type:text;not null"`
}

func (POItem) TableName() string {
	return "po_items"
}

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft           InvoiceStatus = "draft"
	InvoiceStatusSent            InvoiceStatus = "invoice_sent"
	InvoiceStatusPaymentReceived InvoiceStatus = "payment_received"
)

// Invoice bills a customer. Tax equals the sum of line taxes unless
// TaxOverride is set, in which case Tax mirrors the override.
type Invoice struct {
	BaseModel
	Number          string         `gorm:"not null"`
	Date            string         `gorm:"not null"`
	DueDate         string         `gorm:"not null"`
	Currency        string         `gorm:"not null;default:USD"`
	CustomerID      uuid.UUID      `gorm:"type:text;not null"`
	Customer        *Customer      `gorm:"foreignKey:CustomerID"`
	VendorID        *uuid.UUID     `gorm:"type:text"`
	PurchaseOrderID *uuid.UUID     `gorm:"type:text"`
	QuoteID         *uuid.UUID     `gorm:"type:text"`
	SubTotal        float64
	Tax             float64
	TaxOverride     *float64
	Total           float64
	AmountReceived  float64
	Status          InvoiceStatus `gorm:"not null;default:draft"`
	Terms           string
	Notes           string
	Items           []InvoiceItem `gorm:"foreignKey:InvoiceID"`
}

// InvoiceItem is one line of an invoice
type InvoiceItem struct {
	LineItem
	InvoiceID uuid.UUID  `gorm:"type:text;not null"`
	VehicleID *uuid.UUID `gorm:"type:text"`
}

// PayslipStatus represents the approval state of a payslip
type PayslipStatus string

const (
	PayslipStatusDraft    PayslipStatus = "draft"
	PayslipStatusApproved PayslipStatus = "approved"
	PayslipStatusPaid     PayslipStatus = "paid"
)

// Payslip is one employee's pay for one calendar month
type Payslip struct {
	BaseModel
	EmployeeID    uuid.UUID `gorm:"type:text;not null"`
	Employee      *Employee `gorm:"foreignKey:EmployeeID"`
	Month         int       `gorm:"not null"`
	Year          int       `gorm:"not null"`
	BaseSalary    float64
	HoursWorked   float64
	OvertimeHours float64
	OvertimeRate  float64
	OvertimePay   float64
	Allowances    float64
	Deductions    float64
	NetPay        float64
	Status        PayslipStatus `gorm:"not null;default:draft"`
	PaymentDate   string
	Notes         string
}

// TransactionType classifies a vehicle transaction
type TransactionType string

const (
	TransactionTypeRevenue TransactionType = "revenue"
	TransactionTypeExpense TransactionType = "expense"
)

// VehicleTransaction is a revenue or expense booked against a vehicle.
// Month is always Date[:7].
type VehicleTransaction struct {
	BaseModel
	VehicleID       uuid.UUID       `gorm:"type:text;not null"`
	TransactionType TransactionType `gorm:"not null"`
	Category        string
	Amount          float64 `gorm:"not null"`
	Date            string  `gorm:"not null"`
	Month           string  `gorm:"not null"`
	Description     string
	EmployeeID      *uuid.UUID `gorm:"type:text"`
	InvoiceID       *uuid.UUID `gorm:"type:text"`
	PurchaseOrderID *uuid.UUID `gorm:"type:text"`
	QuoteID         *uuid.UUID `gorm:"type:text"`
}

// ExpenseCategory names a class of vehicle expense. Predefined categories
// have IsCustom false.
type ExpenseCategory struct {
	BaseModel
	Name        string `gorm:"not null"`
	Description string
	IsCustom    bool `gorm:"not null;default:true"`
}

// AdminSettingsID is the primary key of the only admin_settings row
const AdminSettingsID = 1

// AdminSettings holds company branding, document numbering patterns and
// dashboard visibility toggles
type AdminSettings struct {
	ID                     int `gorm:"primaryKey"`
	CompanyName            string
	CompanyAddress         string
	CompanyEmail           string
	CompanyPhone           string
	TaxID                  string `gorm:"column:tax_id"`
	Currency               string
	LogoPath               string
	QuoteNumberPattern     string
	InvoiceNumberPattern   string
	PONumberPattern        string `gorm:"column:po_number_pattern"`
	ShowRevenue            bool
	ShowExpenses           bool
	ShowProfit             bool
	ShowMonthlyTrend       bool
	ShowVehiclePerformance bool
	ShowCustomerRevenue    bool
	ShowCategoryBreakdown  bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (AdminSettings) TableName() string {
	return "admin_settings"
}

// DocumentType identifies a numbered document kind
type DocumentType string

const (
	DocumentTypeQuote         DocumentType = "quote"
	DocumentTypeInvoice       DocumentType = "invoice"
	DocumentTypePurchaseOrder DocumentType = "purchase_order"
)

// NumberSequence tracks the last issued sequence per document type and year
type NumberSequence struct {
	DocumentType DocumentType `gorm:"primaryKey"`
	Year         int          `gorm:"primaryKey;autoIncrement:false"`
	LastSequence int          `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DataModule names a group of tables purged together by maintenance
type DataModule string

const (
	ModuleQuotations          DataModule = "Quotations"
	ModuleInvoices            DataModule = "Invoices"
	ModulePurchaseOrders      DataModule = "PurchaseOrders"
	ModulePayslips            DataModule = "Payslips"
	ModuleVehicleTransactions DataModule = "VehicleTransactions"
	ModuleVehicles            DataModule = "Vehicles"
	ModuleEmployees           DataModule = "Employees"
	ModuleCustomers           DataModule = "Customers"
	ModuleVendors             DataModule = "Vendors"
	ModuleExpenseCategories   DataModule = "ExpenseCategories"
)
