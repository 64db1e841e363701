package mocks

import (
	"context"
	"sync"

	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/domain"
)

// MockOtpRepository implements domain.OtpRepository for testing. Without
// overrides it behaves as an in-memory single-slot-per-user store.
type MockOtpRepository struct {
	UpsertFunc       func(ctx context.Context, challenge *domain.OtpChallenge) error
	FindByUserFunc   func(ctx context.Context, userID uint) (*domain.OtpChallenge, error)
	DeleteByUserFunc func(ctx context.Context, userID uint) error

	mu         sync.Mutex
	challenges map[uint]*domain.OtpChallenge
}

// NewMockOtpRepository creates a new MockOtpRepository with default behaviors
func NewMockOtpRepository() *MockOtpRepository {
	return &MockOtpRepository{challenges: make(map[uint]*domain.OtpChallenge)}
}

// Upsert stores the challenge, replacing any prior one for the user
func (m *MockOtpRepository) Upsert(ctx context.Context, challenge *domain.OtpChallenge) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, challenge)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.challenges[challenge.UserID] = challenge
	return nil
}

// FindByUser returns the outstanding challenge for the user
func (m *MockOtpRepository) FindByUser(ctx context.Context, userID uint) (*domain.OtpChallenge, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	challenge, ok := m.challenges[userID]
	if !ok {
		return nil, domain.ErrOTPNotFound
	}
	return challenge, nil
}

// DeleteByUser removes the challenge for the user
func (m *MockOtpRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if m.DeleteByUserFunc != nil {
		return m.DeleteByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.challenges, userID)
	return nil
}

// Stored returns the challenge currently held for the user, if any
func (m *MockOtpRepository) Stored(userID uint) *domain.OtpChallenge {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.challenges[userID]
}

// Count returns the number of stored challenges
func (m *MockOtpRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.challenges)
}
