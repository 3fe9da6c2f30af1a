package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banklink/banklink/internal/domain"
	"github.com/banklink/banklink/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc               func(ctx context.Context, account *domain.Account) error
	CreateTxFunc             func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc              func(ctx context.Context, id string) (*domain.Account, error)
	GetByNumberFunc          func(ctx context.Context, number string) (*domain.Account, error)
	GetByIDForUpdateFunc     func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByNumberForUpdateFunc func(ctx context.Context, tx usecase.Transaction, number string) (*domain.Account, error)
	UpdateBalanceFunc        func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateStatusFunc         func(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error
	ListFunc                 func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed inserts an account directly into the backing store.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) insert(account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.accounts {
		if existing.Number == account.Number {
			return domain.ErrDuplicateNumber
		}
	}
	copied := *account
	m.accounts[account.ID] = &copied
	return nil
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	return m.insert(account)
}

func (m *MockAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, account)
	}
	return m.insert(account)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Number == number {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByNumberForUpdate(ctx context.Context, tx usecase.Transaction, number string) (*domain.Account, error) {
	if m.GetByNumberForUpdateFunc != nil {
		return m.GetByNumberForUpdateFunc(ctx, tx, number)
	}
	return m.GetByNumber(ctx, number)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Balance = balance
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Status = status
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		copied := *acc
		accounts = append(accounts, &copied)
	}
	if offset >= len(accounts) {
		return nil, nil
	}
	end := offset + limit
	if end > len(accounts) {
		end = len(accounts)
	}
	return accounts[offset:end], nil
}

func (m *MockAccountRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if acc.CustomerID == customerID {
			copied := *acc
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, acc := range m.accounts {
		if acc.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

// MockMovementRepository is a mock implementation of MovementRepository.
type MockMovementRepository struct {
	mu        sync.RWMutex
	movements []*domain.Movement

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error
	SumByAccountFunc  func(ctx context.Context, accountID string) (decimal.Decimal, error)
	ListByAccountFunc func(ctx context.Context, accountID string, filter usecase.MovementFilter) ([]*domain.Movement, error)
}

func NewMockMovementRepository() *MockMovementRepository {
	return &MockMovementRepository{}
}

func (m *MockMovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, movement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *movement
	m.movements = append(m.movements, &copied)
	return nil
}

func (m *MockMovementRepository) GetByID(ctx context.Context, id string) (*domain.Movement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, mov := range m.movements {
		if mov.ID == id {
			copied := *mov
			return &copied, nil
		}
	}
	return nil, domain.ErrMovementNotFound
}

func (m *MockMovementRepository) ListByAccount(ctx context.Context, accountID string, filter usecase.MovementFilter) ([]*domain.Movement, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var movements []*domain.Movement
	for _, mov := range m.movements {
		if mov.AccountID != accountID {
			continue
		}
		if filter.From != nil && mov.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !mov.CreatedAt.Before(*filter.To) {
			continue
		}
		copied := *mov
		movements = append(movements, &copied)
	}
	return movements, nil
}

func (m *MockMovementRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, mov := range m.movements {
		if mov.AccountID == accountID {
			count++
		}
	}
	return count, nil
}

func (m *MockMovementRepository) SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if m.SumByAccountFunc != nil {
		return m.SumByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, mov := range m.movements {
		if mov.AccountID == accountID {
			sum = sum.Add(mov.SignedAmount())
		}
	}
	return sum, nil
}

func (m *MockMovementRepository) UpdateDescription(ctx context.Context, id, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mov := range m.movements {
		if mov.ID == id {
			mov.Description = description
			return nil
		}
	}
	return domain.ErrMovementNotFound
}

// MockTransferRepository is a mock implementation of TransferRepository.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers map[string]*domain.Transfer

	CreateFunc       func(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error
	UpdateStatusFunc func(ctx context.Context, tx usecase.Transaction, id string, status domain.TransferStatus, externalRef *string, updatedAt time.Time) error
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{
		transfers: make(map[string]*domain.Transfer),
	}
}

func (m *MockTransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transfer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *transfer
	m.transfers[transfer.ID] = &copied
	return nil
}

func (m *MockTransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transfers[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, domain.ErrTransferNotFound
}

func (m *MockTransferRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transfer, error) {
	return m.GetByID(ctx, id)
}

func (m *MockTransferRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransferStatus, externalRef *string, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, externalRef, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transfers[id]
	if !ok {
		return domain.ErrTransferNotFound
	}
	t.Status = status
	if externalRef != nil {
		t.ExternalRef = externalRef
	}
	t.UpdatedAt = updatedAt
	return nil
}

func (m *MockTransferRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transfer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transfers []*domain.Transfer
	for _, t := range m.transfers {
		from := t.FromAccountID != nil && *t.FromAccountID == accountID
		to := t.ToAccountID != nil && *t.ToAccountID == accountID
		if from || to {
			copied := *t
			transfers = append(transfers, &copied)
		}
	}
	return transfers, nil
}

func (m *MockTransferRepository) CountPendingByBank(ctx context.Context, bankID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, t := range m.transfers {
		if t.BankID != nil && *t.BankID == bankID && t.Status == domain.TransferPending {
			count++
		}
	}
	return count, nil
}

// MockBankRepository is a mock implementation of BankRepository.
type MockBankRepository struct {
	mu    sync.RWMutex
	banks map[string]*domain.ExternalBank

	GetByIDFunc func(ctx context.Context, id string) (*domain.ExternalBank, error)
}

func NewMockBankRepository() *MockBankRepository {
	return &MockBankRepository{
		banks: make(map[string]*domain.ExternalBank),
	}
}

func (m *MockBankRepository) Create(ctx context.Context, bank *domain.ExternalBank) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.banks {
		if existing.RoutingCode == bank.RoutingCode {
			return domain.ErrDuplicateRoutingCode
		}
	}
	copied := *bank
	m.banks[bank.ID] = &copied
	return nil
}

func (m *MockBankRepository) GetByID(ctx context.Context, id string) (*domain.ExternalBank, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.banks[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, domain.ErrBankNotFound
}

func (m *MockBankRepository) GetByRoutingCode(ctx context.Context, code string) (*domain.ExternalBank, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.banks {
		if b.RoutingCode == code {
			copied := *b
			return &copied, nil
		}
	}
	return nil, domain.ErrBankNotFound
}

func (m *MockBankRepository) List(ctx context.Context, limit, offset int) ([]*domain.ExternalBank, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	banks := make([]*domain.ExternalBank, 0, len(m.banks))
	for _, b := range m.banks {
		copied := *b
		banks = append(banks, &copied)
	}
	return banks, nil
}

func (m *MockBankRepository) Update(ctx context.Context, bank *domain.ExternalBank) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.banks[bank.ID]; !ok {
		return domain.ErrBankNotFound
	}
	copied := *bank
	m.banks[bank.ID] = &copied
	return nil
}

func (m *MockBankRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.banks[id]; !ok {
		return domain.ErrBankNotFound
	}
	delete(m.banks, id)
	return nil
}

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[string]*domain.Customer),
	}
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.customers {
		if existing.Email == customer.Email {
			return domain.ErrDuplicateEmail
		}
	}
	copied := *customer
	m.customers[customer.ID] = &copied
	return nil
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.customers[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, domain.ErrCustomerNotFound
}

func (m *MockCustomerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	customers := make([]*domain.Customer, 0, len(m.customers))
	for _, c := range m.customers {
		copied := *c
		customers = append(customers, &copied)
	}
	return customers, nil
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(m.customers, id)
	return nil
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copied := *u
		users = append(users, &copied)
	}
	return users, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	mu           sync.Mutex
	Transactions []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// MockRetrier is a pass-through implementation of Retrier.
type MockRetrier struct{}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

// MockNumberGenerator is a mock implementation of NumberGenerator. It
// serves queued numbers first, then falls back to a sequence.
type MockNumberGenerator struct {
	mu      sync.Mutex
	queue   []string
	counter int
}

func NewMockNumberGenerator(queued ...string) *MockNumberGenerator {
	return &MockNumberGenerator{queue: queued}
}

func (m *MockNumberGenerator) Generate() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return next
	}
	m.counter++
	return fmt.Sprintf("%08d", 10000000+m.counter)
}

// MockBankGateway is a mock implementation of BankGateway.
type MockBankGateway struct {
	mu    sync.Mutex
	Calls []usecase.GatewayNotification

	SendTransferFunc func(ctx context.Context, bank *domain.ExternalBank, notification usecase.GatewayNotification) (string, error)
}

func NewMockBankGateway() *MockBankGateway {
	return &MockBankGateway{}
}

func (m *MockBankGateway) SendTransfer(ctx context.Context, bank *domain.ExternalBank, notification usecase.GatewayNotification) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, notification)
	m.mu.Unlock()

	if m.SendTransferFunc != nil {
		return m.SendTransferFunc(ctx, bank, notification)
	}
	return "EXT-REF-1", nil
}

// MockCache is an in-memory implementation of Cache.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string][]byte

	GetFunc func(ctx context.Context, key string) ([]byte, error)
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
