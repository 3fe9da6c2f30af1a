package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/banklink/banklink/internal/adapter/repository/postgres"
	"github.com/banklink/banklink/internal/usecase"
	"github.com/banklink/banklink/tests/testutil"
)

func TestReconciliationAfterOperations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	customer := testDB.CreateTestCustomer(ctx, "Ada", "ada@example.com")
	accountA := testDB.CreateTestAccount(ctx, customer.ID, "10000001", decimal.RequireFromString("500.00"))
	accountB := testDB.CreateTestAccount(ctx, customer.ID, "10000002", decimal.Zero)

	transferUC := newTransferUseCase(testDB)

	if _, err := transferUC.Deposit(ctx, usecase.DepositInput{
		AccountID: accountB.ID,
		Amount:    decimal.RequireFromString("200.00"),
	}); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	if _, err := transferUC.Withdraw(ctx, usecase.WithdrawInput{
		AccountID: accountA.ID,
		Amount:    decimal.RequireFromString("120.00"),
	}); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}

	if _, err := transferUC.Transfer(ctx, usecase.TransferInput{
		FromAccountID:     accountA.ID,
		DestinationNumber: accountB.Number,
		Amount:            decimal.RequireFromString("80.00"),
	}); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	reconUC := usecase.NewReconciliationUseCase(
		postgres.NewAccountRepository(testDB.Pool),
		postgres.NewMovementRepository(testDB.Pool),
	)

	report, err := reconUC.ReconcileAll(ctx)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if report.TotalAccounts != 2 {
		t.Errorf("expected 2 accounts, got %d", report.TotalAccounts)
	}

	if len(report.Discrepancies) != 0 {
		for _, d := range report.Discrepancies {
			t.Errorf("account %s off by %s (recorded %s, calculated %s)",
				d.AccountNumber, d.Difference, d.RecordedBalance, d.CalculatedBalance)
		}
	}

	result, err := reconUC.ReconcileAccount(ctx, accountA.ID)
	if err != nil {
		t.Fatalf("reconcile account failed: %v", err)
	}

	if result.RecordedBalance.String() != "300" {
		t.Errorf("expected recorded balance 300, got %s", result.RecordedBalance)
	}

	if !result.IsReconciled {
		t.Errorf("account out of balance: difference %s", result.Difference)
	}
}
