package logincode

import (
	"context"
	"sync"
	"time"
)

// InMemoryRepository keeps users and login codes in process memory. It is
// meant for tests and local development.
type InMemoryRepository struct {
	mu         sync.Mutex
	users      map[string]*User
	emailIndex map[string]string
	codes      []*LoginCode
	nextCodeID int64
	now        func() time.Time
}

// NewInMemoryRepository creates an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users:      make(map[string]*User),
		emailIndex: make(map[string]string),
		nextCodeID: 1,
		now:        time.Now,
	}
}

func (r *InMemoryRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.emailIndex[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *r.users[id]
	return &u, nil
}

func (r *InMemoryRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *InMemoryRepository) CreateUser(ctx context.Context, id, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.emailIndex[email]; exists {
		return nil, ErrEmailTaken
	}
	u := &User{ID: id, Email: email, CreatedAt: r.now().UTC()}
	r.users[id] = u
	r.emailIndex[email] = id
	out := *u
	return &out, nil
}

func (r *InMemoryRepository) CreateLoginCode(ctx context.Context, userID, email, codeHash string, expiresAt time.Time) (*LoginCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var owner *string
	if userID != "" {
		owner = &userID
	}
	lc := &LoginCode{
		ID:        r.nextCodeID,
		UserID:    owner,
		Email:     email,
		CodeHash:  codeHash,
		ExpiresAt: expiresAt,
		CreatedAt: r.now().UTC(),
	}
	r.nextCodeID++
	r.codes = append(r.codes, lc)
	out := *lc
	return &out, nil
}

func (r *InMemoryRepository) ConsumeLoginCode(ctx context.Context, email, codeHash string, now time.Time) (*LoginCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var match *LoginCode
	for _, lc := range r.codes {
		if lc.Email != email || lc.CodeHash != codeHash || !lc.Acceptable(now) {
			continue
		}
		if match == nil || newer(lc, match) {
			match = lc
		}
	}
	if match == nil {
		return nil, ErrInvalidCode
	}
	match.Used = true
	out := *match
	return &out, nil
}

// newer orders by created_at then id, both descending.
func newer(a, b *LoginCode) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
