package utils

import (
	"MediCitas/cache"
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const resetCodeTTL = 15 * time.Minute

// GenerateResetCode generates a random 6-digit reset code.
func GenerateResetCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand failing means the platform entropy source is broken.
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// SetResetCode stores the reset code for a given email in Redis for 15 minutes.
func SetResetCode(ctx context.Context, c *cache.Cache, email, code string) error {
	return c.Set(ctx, "reset_code:"+email, code, resetCodeTTL)
}

// GetResetCode retrieves the reset code for a given email from Redis.
// Returns nil when no code is pending.
func GetResetCode(ctx context.Context, c *cache.Cache, email string) (*string, error) {
	code, err := c.Get(ctx, "reset_code:"+email)
	if err != nil {
		return nil, err
	}
	if code == "" {
		return nil, nil
	}
	return &code, nil
}

// DeleteResetCode removes a consumed reset code.
func DeleteResetCode(ctx context.Context, c *cache.Cache, email string) error {
	return c.Delete(ctx, "reset_code:"+email)
}
