package domain

// ErrorResponse is a simple error body used by swagger annotations
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ListResponse wraps collection results
type ListResponse struct {
	Data  interface{} `json:"data"`
	Total int         `json:"total"`
}

type CustomerDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type VendorDTO struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	ContactPerson     string `json:"contactPerson"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	BankName          string `json:"bankName"`
	BankAccountNumber string `json:"bankAccountNumber"`
	BankCode          string `json:"bankCode"`
	PaymentTerms      string `json:"paymentTerms"`
	Notes             string `json:"notes"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

type EmployeeDTO struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	EmployeeID  string      `json:"employeeId"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Role        string      `json:"role"`
	Department  string      `json:"department"`
	PaymentType PaymentType `json:"paymentType"`
	HourlyRate  float64     `json:"hourlyRate"`
	Salary      float64     `json:"salary"`
	JoinDate    string      `json:"joinDate"`
	Status      string      `json:"status"`
	CreatedAt   string      `json:"createdAt"`
	UpdatedAt   string      `json:"updatedAt"`
}

type VehicleDTO struct {
	ID            string        `json:"id"`
	VehicleNumber string        `json:"vehicleNumber"`
	VehicleType   string        `json:"vehicleType"`
	Make          string        `json:"make"`
	Model         string        `json:"model"`
	Year          int           `json:"year"`
	BasePrice     float64       `json:"basePrice"`
	Status        VehicleStatus `json:"status"`
	Notes         string        `json:"notes"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
}

// LineItemDTO is a document line with its derived amounts
type LineItemDTO struct {
	ID            string  `json:"id"`
	SerialNumber  int     `json:"serialNumber"`
	VehicleID     *string `json:"vehicleId,omitempty"`
	Description   string  `json:"description"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unitPrice"`
	TaxPercent    float64 `json:"taxPercent"`
	GrossAmount   float64 `json:"grossAmount"`
	LineTaxAmount float64 `json:"lineTaxAmount"`
	LineTotal     float64 `json:"lineTotal"`
}

type QuoteDTO struct {
	ID           string        `json:"id"`
	Number       string        `json:"number"`
	Date         string        `json:"date"`
	ValidUntil   string        `json:"validUntil"`
	Currency     string        `json:"currency"`
	CustomerID   string        `json:"customerId"`
	CustomerName string        `json:"customerName,omitempty"`
	SubTotal     float64       `json:"subTotal"`
	TotalTax     float64       `json:"totalTax"`
	Total        float64       `json:"total"`
	Status       QuoteStatus   `json:"status"`
	Terms        string        `json:"terms"`
	Notes        string        `json:"notes"`
	Items        []LineItemDTO `json:"items"`
	CreatedAt    string        `json:"createdAt"`
	UpdatedAt    string        `json:"updatedAt"`
}

type PurchaseOrderDTO struct {
	ID           string              `json:"id"`
	Number       string              `json:"number"`
	Date         string              `json:"date"`
	DeliveryDate string              `json:"deliveryDate"`
	Currency     string              `json:"currency"`
	VendorID     string              `json:"vendorId"`
	VendorName   string              `json:"vendorName,omitempty"`
	SubTotal     float64             `json:"subTotal"`
	TotalTax     float64             `json:"totalTax"`
	Total        float64             `json:"total"`
	Status       PurchaseOrderStatus `json:"status"`
	Terms        string              `json:"terms"`
	Notes        string              `json:"notes"`
	Items        []LineItemDTO       `json:"items"`
	CreatedAt    string              `json:"createdAt"`
	UpdatedAt    string              `json:"updatedAt"`
}

// InvoiceDTO exposes optional links as null rather than omitting them
type InvoiceDTO struct {
	ID              string        `json:"id"`
	Number          string        `json:"number"`
	Date            string        `json:"date"`
	DueDate         string        `json:"dueDate"`
	Currency        string        `json:"currency"`
	CustomerID      string        `json:"customerId"`
	CustomerName    string        `json:"customerName,omitempty"`
	VendorID        *string       `json:"vendorId"`
	PurchaseOrderID *string       `json:"purchaseOrderId"`
	QuoteID         *string       `json:"quoteId"`
	SubTotal        float64       `json:"subTotal"`
	Tax             float64       `json:"tax"`
	TaxOverridden   bool          `json:"taxOverridden"`
	Total           float64       `json:"total"`
	AmountReceived  float64       `json:"amountReceived"`
	BalanceDue      float64       `json:"balanceDue"`
	Status          InvoiceStatus `json:"status"`
	Terms           string        `json:"terms"`
	Notes           string        `json:"notes"`
	Items           []LineItemDTO `json:"items"`
	CreatedAt       string        `json:"createdAt"`
	UpdatedAt       string        `json:"updatedAt"`
}

type PayslipDTO struct {
	ID            string        `json:"id"`
	EmployeeID    string        `json:"employeeId"`
	EmployeeName  string        `json:"employeeName,omitempty"`
	Month         int           `json:"month"`
	Year          int           `json:"year"`
	Period        string        `json:"period"`
	BaseSalary    float64       `json:"baseSalary"`
	HoursWorked   float64       `json:"hoursWorked"`
	OvertimeHours float64       `json:"overtimeHours"`
	OvertimeRate  float64       `json:"overtimeRate"`
	OvertimePay   float64       `json:"overtimePay"`
	Allowances    float64       `json:"allowances"`
	Deductions    float64       `json:"deductions"`
	NetPay        float64       `json:"netPay"`
	Status        PayslipStatus `json:"status"`
	PaymentDate   string        `json:"paymentDate"`
	Notes         string        `json:"notes"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
}

type VehicleTransactionDTO struct {
	ID              string          `json:"id"`
	VehicleID       string          `json:"vehicleId"`
	TransactionType TransactionType `json:"transactionType"`
	Category        string          `json:"category"`
	Amount          float64         `json:"amount"`
	Date            string          `json:"date"`
	Month           string          `json:"month"`
	Description     string          `json:"description"`
	EmployeeID      *string         `json:"employeeId"`
	InvoiceID       *string         `json:"invoiceId"`
	PurchaseOrderID *string         `json:"purchaseOrderId"`
	QuoteID         *string         `json:"quoteId"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

type ExpenseCategoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsCustom    bool   `json:"isCustom"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type AdminSettingsDTO struct {
	CompanyName            string `json:"companyName"`
	CompanyAddress         string `json:"companyAddress"`
	CompanyEmail           string `json:"companyEmail"`
	CompanyPhone           string `json:"companyPhone"`
	TaxID                  string `json:"taxId"`
	Currency               string `json:"currency"`
	HasLogo                bool   `json:"hasLogo"`
	QuoteNumberPattern     string `json:"quoteNumberPattern"`
	InvoiceNumberPattern   string `json:"invoiceNumberPattern"`
	PONumberPattern        string `json:"poNumberPattern"`
	ShowRevenue            bool   `json:"showRevenue"`
	ShowExpenses           bool   `json:"showExpenses"`
	ShowProfit             bool   `json:"showProfit"`
	ShowMonthlyTrend       bool   `json:"showMonthlyTrend"`
	ShowVehiclePerformance bool   `json:"showVehiclePerformance"`
	ShowCustomerRevenue    bool   `json:"showCustomerRevenue"`
	ShowCategoryBreakdown  bool   `json:"showCategoryBreakdown"`
	UpdatedAt              string `json:"updatedAt"`
}

// NextNumberDTO is the suggested number for a new document
type NextNumberDTO struct {
	DocumentType DocumentType `json:"documentType"`
	Number       string       `json:"number"`
}

// ModuleDeletionResult reports how many rows each purged table lost
type ModuleDeletionResult struct {
	Modules     []string         `json:"modules"`
	RowsDeleted map[string]int64 `json:"rowsDeleted"`
}

// DemoDataResult counts the records created by the demo seeder
type DemoDataResult struct {
	Customers           int `json:"customers"`
	Vendors             int `json:"vendors"`
	Employees           int `json:"employees"`
	Vehicles            int `json:"vehicles"`
	Quotes              int `json:"quotes"`
	PurchaseOrders      int `json:"purchaseOrders"`
	Invoices            int `json:"invoices"`
	Payslips            int `json:"payslips"`
	VehicleTransactions int `json:"vehicleTransactions"`
}

// BackupResult describes a stored database snapshot
type BackupResult struct {
	Location  string `json:"location"`
	SizeBytes int64  `json:"sizeBytes"`
	CreatedAt string `json:"createdAt"`
}
