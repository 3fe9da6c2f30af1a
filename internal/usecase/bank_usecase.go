package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/banklink/banklink/internal/domain"
)

// bankCacheTTL bounds how long external bank reference data may be served
// from cache. Mutations invalidate eagerly; the TTL is a backstop.
const bankCacheTTL = 10 * time.Minute

// BankUseCase manages external bank reference data. Banks are read on
// every external transfer, so lookups go through a cache.
type BankUseCase struct {
	bankRepo     BankRepository
	transferRepo TransferRepository
	cache        Cache
	idGen        IDGenerator
}

// NewBankUseCase creates a new BankUseCase. cache may be nil, in which
// case every lookup hits the store.
func NewBankUseCase(bankRepo BankRepository, transferRepo TransferRepository, cache Cache, idGen IDGenerator) *BankUseCase {
	return &BankUseCase{
		bankRepo:     bankRepo,
		transferRepo: transferRepo,
		cache:        cache,
		idGen:        idGen,
	}
}

// CreateBankInput represents input for registering an external bank.
type CreateBankInput struct {
	Name        string
	RoutingCode string
	BaseURL     string
}

// CreateBank registers a counterpart institution. The routing code must be
// unique; the store's constraint is the authority.
func (uc *BankUseCase) CreateBank(ctx context.Context, input CreateBankInput) (*domain.ExternalBank, error) {
	if input.Name == "" || input.RoutingCode == "" || input.BaseURL == "" {
		return nil, domain.ErrInvalidBankInput
	}

	now := time.Now().UTC()

	bank := &domain.ExternalBank{
		ID:          uc.idGen.Generate(),
		Name:        input.Name,
		RoutingCode: input.RoutingCode,
		BaseURL:     input.BaseURL,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.bankRepo.Create(ctx, bank); err != nil {
		return nil, err
	}

	return bank, nil
}

// GetBank retrieves an external bank by ID, cache first.
func (uc *BankUseCase) GetBank(ctx context.Context, id string) (*domain.ExternalBank, error) {
	if bank, ok := uc.cachedBank(ctx, bankCacheKey(id)); ok {
		return bank, nil
	}

	bank, err := uc.bankRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.storeBank(ctx, bankCacheKey(id), bank)

	return bank, nil
}

// GetBankByRoutingCode retrieves an external bank by routing code.
func (uc *BankUseCase) GetBankByRoutingCode(ctx context.Context, code string) (*domain.ExternalBank, error) {
	if bank, ok := uc.cachedBank(ctx, routingCacheKey(code)); ok {
		return bank, nil
	}

	bank, err := uc.bankRepo.GetByRoutingCode(ctx, code)
	if err != nil {
		return nil, err
	}

	uc.storeBank(ctx, routingCacheKey(code), bank)

	return bank, nil
}

// ListBanksInput represents input for listing banks.
type ListBanksInput struct {
	Limit  int
	Offset int
}

// ListBanks lists registered external banks.
func (uc *BankUseCase) ListBanks(ctx context.Context, input ListBanksInput) ([]*domain.ExternalBank, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.bankRepo.List(ctx, limit, offset)
}

// UpdateBankInput represents updatable bank fields.
type UpdateBankInput struct {
	Name    string
	BaseURL string
	Active  *bool
}

// UpdateBank updates a bank's mutable fields and invalidates its cache
// entries. The routing code is immutable.
func (uc *BankUseCase) UpdateBank(ctx context.Context, id string, input UpdateBankInput) (*domain.ExternalBank, error) {
	bank, err := uc.bankRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		bank.Name = input.Name
	}

	if input.BaseURL != "" {
		bank.BaseURL = input.BaseURL
	}

	if input.Active != nil {
		bank.Active = *input.Active
	}

	bank.UpdatedAt = time.Now().UTC()

	if err := uc.bankRepo.Update(ctx, bank); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, bank)

	return bank, nil
}

// DeleteBank removes a bank. Deletion is restricted while pending
// transfers still reference it.
func (uc *BankUseCase) DeleteBank(ctx context.Context, id string) error {
	bank, err := uc.bankRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	pending, err := uc.transferRepo.CountPendingByBank(ctx, id)
	if err != nil {
		return err
	}

	if pending > 0 {
		return domain.ErrBankHasPendingTransfers
	}

	if err := uc.bankRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx, bank)

	return nil
}

func (uc *BankUseCase) cachedBank(ctx context.Context, key string) (*domain.ExternalBank, bool) {
	if uc.cache == nil {
		return nil, false
	}

	raw, err := uc.cache.Get(ctx, key)
	if err != nil || raw == nil {
		return nil, false
	}

	var bank domain.ExternalBank
	if err := json.Unmarshal(raw, &bank); err != nil {
		return nil, false
	}

	return &bank, true
}

func (uc *BankUseCase) storeBank(ctx context.Context, key string, bank *domain.ExternalBank) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(bank)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, key, raw, bankCacheTTL); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("bank cache set failed")
	}
}

func (uc *BankUseCase) invalidate(ctx context.Context, bank *domain.ExternalBank) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, bankCacheKey(bank.ID))
	_ = uc.cache.Delete(ctx, routingCacheKey(bank.RoutingCode))
}

func bankCacheKey(id string) string {
	return "bank:id:" + id
}

func routingCacheKey(code string) string {
	return "bank:routing:" + code
}
