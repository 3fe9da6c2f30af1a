package integration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/banklink/banklink/internal/adapter/repository/postgres"
	"github.com/banklink/banklink/internal/domain"
	"github.com/banklink/banklink/internal/usecase"
	"github.com/banklink/banklink/internal/usecase/mocks"
	"github.com/banklink/banklink/tests/testutil"
)

func newTransferUseCase(db *testutil.TestDB) *usecase.TransferUseCase {
	pool := db.Pool

	return usecase.NewTransferUseCase(
		postgres.NewTxManager(pool),
		postgres.NewRetrier(zerolog.Nop()),
		postgres.NewAccountRepository(pool),
		postgres.NewTransferRepository(pool),
		postgres.NewMovementRepository(pool),
		postgres.NewBankRepository(pool),
		mocks.NewMockBankGateway(),
		postgres.NewULIDGenerator(),
		usecase.TransferConfig{OriginBankName: "BankLink", GatewayTimeout: 5 * time.Second},
	)
}

func TestConcurrentWithdrawals(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	customer := testDB.CreateTestCustomer(ctx, "Ada", "ada@example.com")
	account := testDB.CreateTestAccount(ctx, customer.ID, "10000001", decimal.RequireFromString("100.00"))

	uc := newTransferUseCase(testDB)

	// Two withdrawals of 60 against a balance of 100: exactly one may
	// succeed, regardless of interleaving.
	var succeeded, rejected int64
	var wg sync.WaitGroup

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := uc.Withdraw(ctx, usecase.WithdrawInput{
				AccountID: account.ID,
				Amount:    decimal.RequireFromString("60.00"),
			})
			switch {
			case err == nil:
				atomic.AddInt64(&succeeded, 1)
			case errors.Is(err, domain.ErrInsufficientFunds):
				atomic.AddInt64(&rejected, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 || rejected != 1 {
		t.Errorf("expected exactly one success and one rejection, got %d/%d", succeeded, rejected)
	}

	accountRepo := postgres.NewAccountRepository(testDB.Pool)
	final, err := accountRepo.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if final.Balance.String() != "40" {
		t.Errorf("expected final balance 40, got %s", final.Balance)
	}
}

func TestConcurrentTransfersConserveFunds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	customer := testDB.CreateTestCustomer(ctx, "Ada", "ada@example.com")
	accountA := testDB.CreateTestAccount(ctx, customer.ID, "10000001", decimal.RequireFromString("1000.00"))
	accountB := testDB.CreateTestAccount(ctx, customer.ID, "10000002", decimal.RequireFromString("1000.00"))

	uc := newTransferUseCase(testDB)

	// Transfers in both directions at once: opposite lock order is the
	// classic deadlock shape, covered by sorted locking plus the retrier.
	const rounds = 20

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := uc.Transfer(ctx, usecase.TransferInput{
				FromAccountID:     accountA.ID,
				DestinationNumber: accountB.Number,
				Amount:            decimal.RequireFromString("10.00"),
			})
			if err != nil {
				t.Errorf("a->b transfer failed: %v", err)
			}
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := uc.Transfer(ctx, usecase.TransferInput{
				FromAccountID:     accountB.ID,
				DestinationNumber: accountA.Number,
				Amount:            decimal.RequireFromString("10.00"),
			})
			if err != nil {
				t.Errorf("b->a transfer failed: %v", err)
			}
		}
	}()

	wg.Wait()

	accountRepo := postgres.NewAccountRepository(testDB.Pool)

	finalA, err := accountRepo.GetByID(ctx, accountA.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	finalB, err := accountRepo.GetByID(ctx, accountB.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total := finalA.Balance.Add(finalB.Balance)
	if total.String() != "2000" {
		t.Errorf("funds not conserved: %s + %s = %s", finalA.Balance, finalB.Balance, total)
	}

	// Equal traffic both ways leaves both balances where they started.
	if finalA.Balance.String() != "1000" || finalB.Balance.String() != "1000" {
		t.Errorf("unexpected final balances: %s / %s", finalA.Balance, finalB.Balance)
	}
}
