// Package memory is an in-process account store for development and tests.
// It keeps the same transactional contract as the PostgreSQL store: writes are
// staged per transaction and UNIQUE(email) is enforced when the transaction commits.
package memory

import (
	"context"
	"sync"
	"time"

	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"

	"github.com/google/uuid"
)

// Store holds committed accounts keyed by email and by id.
type Store struct {
	mu      sync.RWMutex
	byEmail map[string]*entity.Account
	byID    map[uuid.UUID]*entity.Account
	now     func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		byEmail: make(map[string]*entity.Account),
		byID:    make(map[uuid.UUID]*entity.Account),
		now:     time.Now,
	}
}

// NewTransactionManager exposes the store through the domain TransactionManager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return store
}

// Len returns the number of committed accounts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byEmail)
}

// Execute runs fn against a staging area and commits it atomically if fn succeeds.
func (s *Store) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &transaction{
		store:   s,
		created: make(map[string]*entity.Account),
		touched: make(map[uuid.UUID]time.Time),
	}

	if err := fn(tx); err != nil {
		return err
	}

	return s.commit(tx)
}

func (s *Store) commit(tx *transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for email := range tx.created {
		if _, exists := s.byEmail[email]; exists {
			return domainerrors.ErrAccountAlreadyExists.WrapMessage("commit rejected by unique email")
		}
	}
	for id := range tx.touched {
		if _, staged := tx.createdByID(id); staged {
			continue
		}
		if _, exists := s.byID[id]; !exists {
			return repository.ErrAccountNotFound
		}
	}

	for email, account := range tx.created {
		stored := *account
		s.byEmail[email] = &stored
		s.byID[stored.ID] = &stored
	}
	for id, at := range tx.touched {
		s.byID[id].LastLoginAt = at
	}

	return nil
}

// transaction is the per-Execute staging area. It is used by one goroutine.
type transaction struct {
	store   *Store
	created map[string]*entity.Account
	touched map[uuid.UUID]time.Time
}

func (tx *transaction) AccountRepo() repository.AccountRepository {
	return tx
}

func (tx *transaction) createdByID(id uuid.UUID) (*entity.Account, bool) {
	for _, account := range tx.created {
		if account.ID == id {
			return account, true
		}
	}

	return nil, false
}

func (tx *transaction) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if account, ok := tx.created[email]; ok {
		return tx.withTouch(*account), nil
	}

	tx.store.mu.RLock()
	account, ok := tx.store.byEmail[email]
	var found entity.Account
	if ok {
		found = *account
	}
	tx.store.mu.RUnlock()

	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return tx.withTouch(found), nil
}

func (tx *transaction) withTouch(account entity.Account) *entity.Account {
	if at, ok := tx.touched[account.ID]; ok {
		account.LastLoginAt = at
	}

	return &account
}

func (tx *transaction) Create(ctx context.Context, account *entity.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, ok := tx.created[account.Email]; ok {
		return domainerrors.ErrAccountAlreadyExists.WrapMessage("email already exists")
	}

	tx.store.mu.RLock()
	_, exists := tx.store.byEmail[account.Email]
	tx.store.mu.RUnlock()
	if exists {
		return domainerrors.ErrAccountAlreadyExists.WrapMessage("email already exists")
	}

	account.ID = uuid.New()
	account.CreatedAt = tx.store.now()

	staged := *account
	tx.created[account.Email] = &staged

	return nil
}

func (tx *transaction) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, ok := tx.createdByID(id); !ok {
		tx.store.mu.RLock()
		_, exists := tx.store.byID[id]
		tx.store.mu.RUnlock()
		if !exists {
			return repository.ErrAccountNotFound
		}
	}

	tx.touched[id] = at

	return nil
}
