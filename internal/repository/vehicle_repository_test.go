package repository_test

import (
	"context"
	"testing"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/repository"
	"github.com/imanage/imanage-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleRepository_DuplicateNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewVehicleRepository(db)
	existing := testutil.CreateTestVehicle(t, db)

	err := repo.Create(context.Background(), &domain.Vehicle{VehicleNumber: existing.VehicleNumber, Status: domain.VehicleStatusAvailable}, nil)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Contains(t, err.Error(), existing.VehicleNumber)
}

func TestVehicleRepository_DeleteCascadesTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewVehicleRepository(db)
	vehicle := testutil.CreateTestVehicle(t, db)
	testutil.CreateTestTransaction(t, db, vehicle.ID, domain.TransactionTypeRevenue, 500, "2025-01-10")
	testutil.CreateTestTransaction(t, db, vehicle.ID, domain.TransactionTypeExpense, 80, "2025-01-12")

	require.NoError(t, repo.Delete(context.Background(), vehicle.ID))

	var count int64
	require.NoError(t, db.Table("vehicle_transactions").Where("vehicle_id = ?", vehicle.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestVehicleRepository_DeleteBlockedByQuoteLine(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewVehicleRepository(db)
	vehicle := testutil.CreateTestVehicle(t, db)
	customer := testutil.CreateTestCustomer(t, db, "Renter")
	testutil.CreateTestQuote(t, db, customer.ID, "QT-VEH-1", &vehicle.ID)

	err := repo.Delete(context.Background(), vehicle.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, "Cannot delete vehicle as it is referenced in Quote QT-VEH-1", err.Error())

	found, err := repo.GetByID(context.Background(), vehicle.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestEmployeeRepository_DeleteBlockedByPayslip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewEmployeeRepository(db)
	payslips := repository.NewPayslipRepository(db)
	employee := testutil.CreateTestEmployee(t, db, "Dana Driver")

	require.NoError(t, payslips.Create(context.Background(), &domain.Payslip{
		EmployeeID: employee.ID, Month: 3, Year: 2025, BaseSalary: 3000, NetPay: 3000, Status: domain.PayslipStatusDraft,
	}, nil))

	err := repo.Delete(context.Background(), employee.ID)
	require.Error(t, err)
	assert.Equal(t, "Cannot delete employee as it is referenced in Payslip 2025-03", err.Error())
}

func TestEmployeeRepository_DeleteClearsTransactionLink(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewEmployeeRepository(db)
	employee := testutil.CreateTestEmployee(t, db, "Sam Mechanic")
	vehicle := testutil.CreateTestVehicle(t, db)
	tx := testutil.CreateTestTransaction(t, db, vehicle.ID, domain.TransactionTypeExpense, 120, "2025-02-02")
	require.NoError(t, db.Model(tx).Update("employee_id", employee.ID).Error)

	require.NoError(t, repo.Delete(context.Background(), employee.ID))

	var reloaded domain.VehicleTransaction
	require.NoError(t, db.First(&reloaded, "id = ?", tx.ID).Error)
	assert.Nil(t, reloaded.EmployeeID)
}

func TestPayslipRepository_UniquePeriod(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPayslipRepository(db)
	employee := testutil.CreateTestEmployee(t, db, "Pat Payroll")

	first := &domain.Payslip{EmployeeID: employee.ID, Month: 5, Year: 2025, Status: domain.PayslipStatusDraft}
	require.NoError(t, repo.Create(context.Background(), first, nil))

	err := repo.Create(context.Background(), &domain.Payslip{EmployeeID: employee.ID, Month: 5, Year: 2025, Status: domain.PayslipStatusDraft}, nil)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	require.NoError(t, repo.Create(context.Background(), &domain.Payslip{EmployeeID: employee.ID, Month: 6, Year: 2025, Status: domain.PayslipStatusDraft}, nil))

	may, err := repo.ListByPeriod(context.Background(), 2025, 5)
	require.NoError(t, err)
	require.Len(t, may, 1)
	assert.Equal(t, first.ID, may[0].ID)
	require.NotNil(t, may[0].Employee)
	assert.Equal(t, "Pat Payroll", may[0].Employee.Name)
}

func TestVehicleTransactionRepository_ListFiltered(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewVehicleTransactionRepository(db)
	v1 := testutil.CreateTestVehicle(t, db)
	v2 := testutil.CreateTestVehicle(t, db)
	testutil.CreateTestTransaction(t, db, v1.ID, domain.TransactionTypeRevenue, 100, "2025-01-05")
	testutil.CreateTestTransaction(t, db, v1.ID, domain.TransactionTypeExpense, 30, "2025-02-05")
	testutil.CreateTestTransaction(t, db, v2.ID, domain.TransactionTypeRevenue, 70, "2025-02-06")

	rows, err := repo.ListFiltered(context.Background(), repository.TransactionFilters{VehicleID: &v1.ID})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "2025-02-05", rows[0].Date)

	rows, err = repo.ListFiltered(context.Background(), repository.TransactionFilters{Month: "2025-02", TransactionType: domain.TransactionTypeRevenue})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, v2.ID, rows[0].VehicleID)
}

func TestExpenseCategoryRepository_CaseInsensitiveName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewExpenseCategoryRepository(db)

	categories, err := repo.List(context.Background(), repository.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, categories, 10)
	assert.False(t, categories[0].IsCustom)

	err = repo.Create(context.Background(), &domain.ExpenseCategory{Name: "fuel", IsCustom: true}, nil)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	assert.NoError(t, repo.Create(context.Background(), &domain.ExpenseCategory{Name: "Cleaning", IsCustom: true}, nil))
}
