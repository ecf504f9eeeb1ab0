package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/repository"
	"github.com/imanage/imanage-api/internal/service"
	"github.com/imanage/imanage-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidateTransactionDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr string
	}{
		{"today", "2025-03-15", ""},
		{"oldest allowed day", "2024-03-15", ""},
		{"tomorrow", "2025-03-16", "Transaction date cannot be in the future"},
		{"too old", "2024-03-14", "Transaction date must be on or after 2024-03-15"},
		{"malformed", "15/03/2025", "Date must be in YYYY-MM-DD format"},
		{"empty", "", "Date must be in YYYY-MM-DD format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidateTransactionDate(tt.date, fixedNow)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			derr := requireKind(t, err, domain.KindValidation)
			assert.Equal(t, tt.wantErr, derr.Message)
		})
	}
}

func TestVehicleTransactionService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewVehicleTransactionService(repository.NewVehicleTransactionRepository(db), zap.NewNop())
	svc.SetClock(fixedClock)
	vehicle := testutil.CreateTestVehicle(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.VehicleTransactionRequest{
		Vehicle:         &domain.RefInput{ID: vehicle.ID.String()},
		TransactionType: domain.TransactionTypeExpense,
		Category:        " Fuel ",
		Amount:          80.5,
		Date:            "2025-02-03",
		EmployeeID:      "",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-02", created.Month)
	assert.Equal(t, "Fuel", created.Category)
	assert.Nil(t, created.EmployeeID)

	t.Run("amount must be positive", func(t *testing.T) {
		for _, amount := range []float64{0, -10} {
			_, err := svc.Create(ctx, &domain.VehicleTransactionRequest{
				VehicleID: vehicle.ID.String(), TransactionType: domain.TransactionTypeRevenue, Amount: amount, Date: "2025-03-01",
			})
			derr := requireKind(t, err, domain.KindValidation)
			assert.Equal(t, "Amount must be greater than 0", derr.Message)
		}
	})

	t.Run("month follows date on update", func(t *testing.T) {
		updated, err := svc.Update(ctx, mustParse(t, created.ID), &domain.VehicleTransactionRequest{
			VehicleID: vehicle.ID.String(), TransactionType: domain.TransactionTypeExpense, Amount: 80.5, Date: "2025-03-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "2025-03", updated.Month)
	})

	t.Run("list by loose month", func(t *testing.T) {
		rows, err := svc.List(ctx, repository.TransactionFilters{Month: "2025-3"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, created.ID, rows[0].ID)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.VehicleTransactionRequest{
			VehicleID: "0b8f5b1e-2f49-4c1e-9a0a-3d3f6f0e9b11", TransactionType: domain.TransactionTypeRevenue, Amount: 10, Date: "2025-03-01",
		})
		requireKind(t, err, domain.KindValidation)
	})
}

func TestVehicleTransactionService_DefaultClockIsUTC(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewVehicleTransactionService(repository.NewVehicleTransactionRepository(db), zap.NewNop())
	vehicle := testutil.CreateTestVehicle(t, db)
	ctx := context.Background()

	local := time.Local
	t.Cleanup(func() { time.Local = local })

	// The window bounds are UTC days whatever the host zone. At any instant
	// one of these zones is on a different calendar day than UTC.
	for _, zone := range []*time.Location{
		time.FixedZone("UTC-12", -12*3600),
		time.FixedZone("UTC+14", 14*3600),
	} {
		t.Run(zone.String(), func(t *testing.T) {
			time.Local = zone
			today := time.Now().UTC()
			for _, date := range []string{
				today.Format("2006-01-02"),
				today.AddDate(-1, 0, 0).Format("2006-01-02"),
			} {
				_, err := svc.Create(ctx, &domain.VehicleTransactionRequest{
					VehicleID: vehicle.ID.String(), TransactionType: domain.TransactionTypeRevenue, Amount: 10, Date: date,
				})
				assert.NoError(t, err, date)
			}
		})
	}
}

func TestComputePay(t *testing.T) {
	salaried := &domain.Employee{PaymentType: domain.PaymentTypeSalary, Salary: 4000}
	hourly := &domain.Employee{PaymentType: domain.PaymentTypeHourly, HourlyRate: 25}

	pay := service.ComputePay(salaried, &domain.PayslipRequest{
		BaseSalary: 4000, OvertimeHours: 5, OvertimeRate: 30, Allowances: 200, Deductions: 150.5,
	})
	assert.Equal(t, 4000.0, pay.BaseSalary)
	assert.Equal(t, 150.0, pay.OvertimePay)
	assert.Equal(t, 4199.5, pay.NetPay)

	pay = service.ComputePay(hourly, &domain.PayslipRequest{BaseSalary: 999, HoursWorked: 120})
	assert.Equal(t, 3000.0, pay.BaseSalary, "hourly base comes from hours worked")
	assert.Equal(t, 3000.0, pay.NetPay)

	pay = service.ComputePay(hourly, &domain.PayslipRequest{BaseSalary: 500})
	assert.Equal(t, 500.0, pay.BaseSalary, "without hours the entered base is kept")
}

func TestPayslipService_ListByMonth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewPayslipService(repository.NewPayslipRepository(db), repository.NewEmployeeRepository(db), zap.NewNop())
	employee := testutil.CreateTestEmployee(t, db, "Payslip Employee")
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.PayslipRequest{EmployeeID: employee.ID.String(), Month: 3, Year: 2025, BaseSalary: 3000})
	require.NoError(t, err)
	assert.Equal(t, "2025-03", created.Period)

	rows, err := svc.ListByMonth(ctx, "2025-3")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, err = svc.ListByMonth(ctx, "March")
	requireKind(t, err, domain.KindValidation)

	_, err = svc.Create(ctx, &domain.PayslipRequest{EmployeeID: employee.ID.String(), Month: 3, Year: 2025})
	requireKind(t, err, domain.KindValidation)
}
