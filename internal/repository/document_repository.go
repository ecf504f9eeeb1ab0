package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"gorm.io/gorm"
)

func orderBySerial(db *gorm.DB) *gorm.DB {
	return db.Order("serial_number ASC")
}

// vehicleLinesExist validates the optional vehicle reference on each line
func vehicleLinesExist[T any](ids func(*T) []*uuid.UUID) Check[T] {
	return func(ctx context.Context, tx *gorm.DB, entity *T, _ *uuid.UUID) error {
		for i, id := range ids(entity) {
			if id == nil || *id == uuid.Nil {
				continue
			}
			ok, err := Exists(tx, "vehicles", *id)
			if err != nil {
				return fmt.Errorf("failed to check vehicle: %w", err)
			}
			if !ok {
				return domain.NewValidationError("items", fmt.Sprintf("Item %d references vehicle %s which does not exist", i+1, id.String()))
			}
		}
		return nil
	}
}

// QuoteRepository stores quotes with their items. Invoices created from a
// quote block its deletion.
type QuoteRepository struct {
	*Repository[domain.Quote]
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{New(db, Spec[domain.Quote]{
		Entity:        "quote",
		Table:         "quotes",
		Order:         "date DESC, number DESC",
		SearchColumns: []string{"number", "notes"},
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Preload("Customer").Preload("Items", orderBySerial)
		},
		Required: []RequiredField[domain.Quote]{
			{Field: "number", Label: "Quote number", Value: func(q *domain.Quote) string { return q.Number }},
		},
		Unique: []UniqueField[domain.Quote]{
			{Column: "number", Label: "Quote number", Value: func(q *domain.Quote) string { return q.Number }},
		},
		Foreign: []ForeignKey[domain.Quote]{
			{Field: "customerId", Table: "customers", Label: "Customer", Required: true, Value: func(q *domain.Quote) *uuid.UUID { return &q.CustomerID }},
		},
		Checks: []Check[domain.Quote]{
			vehicleLinesExist(func(q *domain.Quote) []*uuid.UUID {
				ids := make([]*uuid.UUID, len(q.Items))
				for i := range q.Items {
					ids[i] = q.Items[i].VehicleID
				}
				return ids
			}),
		},
		Dependents: []Dependent{
			{Type: "Invoice", Query: "SELECT number FROM invoices WHERE quote_id = ? ORDER BY number"},
		},
	})}
}

func (r *QuoteRepository) replaceItems(quote *domain.Quote) func(tx *gorm.DB) error {
	items := quote.Items
	return func(tx *gorm.DB) error {
		for i := range items {
			items[i].QuoteID = quote.ID
		}
		return ReplaceChildren(tx, "quote_id", quote.ID, items)
	}
}

// CreateWithItems inserts the quote and its items atomically
func (r *QuoteRepository) CreateWithItems(ctx context.Context, quote *domain.Quote) error {
	return r.Create(ctx, quote, r.replaceItems(quote))
}

// UpdateWithItems replaces the quote row and its whole item set atomically
func (r *QuoteRepository) UpdateWithItems(ctx context.Context, quote *domain.Quote) error {
	return r.Update(ctx, quote, r.replaceItems(quote))
}

// PurchaseOrderRepository stores purchase orders with their items
type PurchaseOrderRepository struct {
	*Repository[domain.PurchaseOrder]
}

func NewPurchaseOrderRepository(db *gorm.DB) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{New(db, Spec[domain.PurchaseOrder]{
		Entity:        "purchase order",
		Table:         "purchase_orders",
		Order:         "date DESC, number DESC",
		SearchColumns: []string{"number", "notes"},
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Preload("Vendor").Preload("Items", orderBySerial)
		},
		Required: []RequiredField[domain.PurchaseOrder]{
			{Field: "number", Label: "Purchase order number", Value: func(p *domain.PurchaseOrder) string { return p.Number }},
		},
		Unique: []UniqueField[domain.PurchaseOrder]{
			{Column: "number", Label: "Purchase order number", Value: func(p *domain.PurchaseOrder) string { return p.Number }},
		},
		Foreign: []ForeignKey[domain.PurchaseOrder]{
			{Field: "vendorId", Table: "vendors", Label: "Vendor", Required: true, Value: func(p *domain.PurchaseOrder) *uuid.UUID { return &p.VendorID }},
		},
		Dependents: []Dependent{
			{Type: "Invoice", Query: "SELECT number FROM invoices WHERE purchase_order_id = ? ORDER BY number"},
		},
	})}
}

func (r *PurchaseOrderRepository) replaceItems(po *domain.PurchaseOrder) func(tx *gorm.DB) error {
	items := po.Items
	return func(tx *gorm.DB) error {
		for i := range items {
			items[i].PurchaseOrderID = po.ID
		}
		return ReplaceChildren(tx, "purchase_order_id", po.ID, items)
	}
}

// CreateWithItems inserts the purchase order and its items atomically
func (r *PurchaseOrderRepository) CreateWithItems(ctx context.Context, po *domain.PurchaseOrder) error {
	return r.Create(ctx, po, r.replaceItems(po))
}

// UpdateWithItems replaces the purchase order row and its whole item set atomically
func (r *PurchaseOrderRepository) UpdateWithItems(ctx context.Context, po *domain.PurchaseOrder) error {
	return r.Update(ctx, po, r.replaceItems(po))
}

// InvoiceRepository stores invoices with their items. Linked vehicle
// transactions lose the link when an invoice is deleted.
type InvoiceRepository struct {
	*Repository[domain.Invoice]
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{New(db, Spec[domain.Invoice]{
		Entity:        "invoice",
		Table:         "invoices",
		Order:         "date DESC, number DESC",
		SearchColumns: []string{"number", "notes"},
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Preload("Customer").Preload("Items", orderBySerial)
		},
		Required: []RequiredField[domain.Invoice]{
			{Field: "number", Label: "Invoice number", Value: func(i *domain.Invoice) string { return i.Number }},
		},
		Unique: []UniqueField[domain.Invoice]{
			{Column: "number", Label: "Invoice number", Value: func(i *domain.Invoice) string { return i.Number }},
		},
		Foreign: []ForeignKey[domain.Invoice]{
			{Field: "customerId", Table: "customers", Label: "Customer", Required: true, Value: func(i *domain.Invoice) *uuid.UUID { return &i.CustomerID }},
			{Field: "vendorId", Table: "vendors", Label: "Vendor", Value: func(i *domain.Invoice) *uuid.UUID { return i.VendorID }},
			{Field: "purchaseOrderId", Table: "purchase_orders", Label: "Purchase order", Value: func(i *domain.Invoice) *uuid.UUID { return i.PurchaseOrderID }},
			{Field: "quoteId", Table: "quotes", Label: "Quote", Value: func(i *domain.Invoice) *uuid.UUID { return i.QuoteID }},
		},
		Checks: []Check[domain.Invoice]{
			vehicleLinesExist(func(inv *domain.Invoice) []*uuid.UUID {
				ids := make([]*uuid.UUID, len(inv.Items))
				for i := range inv.Items {
					ids[i] = inv.Items[i].VehicleID
				}
				return ids
			}),
		},
	})}
}

func (r *InvoiceRepository) replaceItems(invoice *domain.Invoice) func(tx *gorm.DB) error {
	items := invoice.Items
	return func(tx *gorm.DB) error {
		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		return ReplaceChildren(tx, "invoice_id", invoice.ID, items)
	}
}

// CreateWithItems inserts the invoice and its items atomically
func (r *InvoiceRepository) CreateWithItems(ctx context.Context, invoice *domain.Invoice) error {
	return r.Create(ctx, invoice, r.replaceItems(invoice))
}

// UpdateWithItems replaces the invoice row and its whole item set atomically
func (r *InvoiceRepository) UpdateWithItems(ctx context.Context, invoice *domain.Invoice) error {
	return r.Update(ctx, invoice, r.replaceItems(invoice))
}

// CustomerIndex maps every invoice id to its customer id
func (r *InvoiceRepository) CustomerIndex(ctx context.Context) (map[uuid.UUID]uuid.UUID, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID         uuid.UUID
		CustomerID uuid.UUID
	}
	if err := db.Table("invoices").Select("id, customer_id").Scan(&rows).Error; err != nil {
		return nil, r.wrap("index", err)
	}
	index := make(map[uuid.UUID]uuid.UUID, len(rows))
	for _, row := range rows {
		index[row.ID] = row.CustomerID
	}
	return index, nil
}
