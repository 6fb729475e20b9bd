package identity

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MemoryAccounts is an in-memory Accounts implementation. Passwords
// are stored as bcrypt hashes, never in the clear.
type MemoryAccounts struct {
	mu       sync.RWMutex
	byEmail  map[string]string // normalized email -> id
	accounts map[string]*record
}

type record struct {
	account Account
	hash    []byte
}

// NewMemoryAccounts creates an empty in-memory account store.
func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{
		byEmail:  make(map[string]string),
		accounts: make(map[string]*record),
	}
}

// Create registers a new account with the given roles.
func (m *MemoryAccounts) Create(_ context.Context, email, password string, roles ...string) (Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	key := normalize(email)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byEmail[key]; taken {
		return Account{}, ErrEmailTaken
	}

	acct := Account{
		ID:    uuid.NewString(),
		Email: email,
		Roles: append([]string(nil), roles...),
	}
	m.byEmail[key] = acct.ID
	m.accounts[acct.ID] = &record{account: acct, hash: hash}

	return snapshot(acct), nil
}

// FindByEmail looks up an account by email, case-insensitively.
func (m *MemoryAccounts) FindByEmail(_ context.Context, email string) (Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[normalize(email)]
	if !ok {
		return Account{}, ErrNotFound
	}
	return snapshot(m.accounts[id].account), nil
}

// VerifyPassword checks the password for an account id.
func (m *MemoryAccounts) VerifyPassword(_ context.Context, id, password string) error {
	m.mu.RLock()
	rec, ok := m.accounts[id]
	m.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	if bcrypt.CompareHashAndPassword(rec.hash, []byte(password)) != nil {
		return ErrBadPassword
	}
	return nil
}

// Roles returns the current role set for an account id.
func (m *MemoryAccounts) Roles(_ context.Context, id string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]string(nil), rec.account.Roles...), nil
}

// Grant adds a role to an account. Outside the Accounts contract; used
// by seeding and tests.
func (m *MemoryAccounts) Grant(id, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.accounts[id]
	if !ok {
		return ErrNotFound
	}
	for _, r := range rec.account.Roles {
		if r == role {
			return nil
		}
	}
	rec.account.Roles = append(rec.account.Roles, role)
	return nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func snapshot(a Account) Account {
	a.Roles = append([]string(nil), a.Roles...)
	return a
}

// Ensure MemoryAccounts implements Accounts
var _ Accounts = (*MemoryAccounts)(nil)
