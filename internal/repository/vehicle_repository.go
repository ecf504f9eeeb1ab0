package repository

import (
	"github.com/imanage/imanage-api/internal/domain"
	"gorm.io/gorm"
)

// VehicleRepository stores fleet vehicles. Quote and invoice lines block
// deletion; vehicle transactions cascade.
type VehicleRepository struct {
	*Repository[domain.Vehicle]
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{New(db, Spec[domain.Vehicle]{
		Entity:        "vehicle",
		Table:         "vehicles",
		Order:         "vehicle_number ASC",
		SearchColumns: []string{"vehicle_number", "make", "model", "vehicle_type"},
		Required: []RequiredField[domain.Vehicle]{
			{Field: "vehicleNumber", Label: "Vehicle number", Value: func(v *domain.Vehicle) string { return v.VehicleNumber }},
		},
		Unique: []UniqueField[domain.Vehicle]{
			{Column: "vehicle_number", Label: "Vehicle number", Value: func(v *domain.Vehicle) string { return v.VehicleNumber }},
		},
		Dependents: []Dependent{
			{Type: "Quote", Query: "SELECT DISTINCT q.number FROM quote_items qi JOIN quotes q ON q.id = qi.quote_id WHERE qi.vehicle_id = ? ORDER BY q.number"},
			{Type: "Invoice", Query: "SELECT DISTINCT i.number FROM invoice_items ii JOIN invoices i ON i.id = ii.invoice_id WHERE ii.vehicle_id = ? ORDER BY i.number"},
		},
	})}
}
