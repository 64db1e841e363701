package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/domain"
)

// OtpRepositoryImpl implements domain.OtpRepository using Redis. Challenges
// live at one key per user, so SET gives the upsert semantics that enforce
// the single-challenge-per-user invariant, and the key TTL purges expired
// challenges without a reaper.
type OtpRepositoryImpl struct {
	client *redis.Client
	prefix string
}

// NewOtpRepository creates a new OTP repository
func NewOtpRepository(client *redis.Client) domain.OtpRepository {
	return &OtpRepositoryImpl{
		client: client,
		prefix: "otp:user:",
	}
}

func (r *OtpRepositoryImpl) key(userID uint) string {
	return fmt.Sprintf("%s%d", r.prefix, userID)
}

// Upsert implements domain.OtpRepository. Any previously stored challenge
// for the user is overwritten.
func (r *OtpRepositoryImpl) Upsert(ctx context.Context, challenge *domain.OtpChallenge) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("failed to marshal otp challenge: %w", err)
	}

	ttl := time.Until(challenge.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("refusing to store already expired challenge for user %d", challenge.UserID)
	}

	return r.client.Set(ctx, r.key(challenge.UserID), data, ttl).Err()
}

// FindByUser implements domain.OtpRepository
func (r *OtpRepositoryImpl) FindByUser(ctx context.Context, userID uint) (*domain.OtpChallenge, error) {
	data, err := r.client.Get(ctx, r.key(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrOTPNotFound
		}
		return nil, err
	}

	var challenge domain.OtpChallenge
	if err := json.Unmarshal([]byte(data), &challenge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal otp challenge: %w", err)
	}

	return &challenge, nil
}

// DeleteByUser implements domain.OtpRepository
func (r *OtpRepositoryImpl) DeleteByUser(ctx context.Context, userID uint) error {
	return r.client.Del(ctx, r.key(userID)).Err()
}
