package utils

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/o1egl/paseto"
)

const (
	// Set expiration times for access and refresh tokens.
	AccessTokenExpiry  = 24 * time.Hour
	RefreshTokenExpiry = 7 * 24 * time.Hour

	// RoleAdmin is the only role the back office knows.
	RoleAdmin = "Admin"
)

// TokenClaims represents the data carried in a back-office session token.
type TokenClaims struct {
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Expiry   time.Time `json:"expiry"`
}

// GetSymmetricKey retrieves the symmetric key from the environment variable.
// Ensures it has the correct length (32 bytes).
func GetSymmetricKey() []byte {
	key := os.Getenv("SYMMETRIC_KEY")
	if len(key) != 32 {
		log.Fatalf("SYMMETRIC_KEY must be 32 bytes long. Current length: %d", len(key))
	}
	return []byte(key)
}

// GenerateTokens generates both the access token and refresh token for the
// given admin username.
func GenerateTokens(username string) (accessToken, refreshToken string, err error) {
	accessToken, err = generatePASEToken(username, AccessTokenExpiry)
	if err != nil {
		log.Printf("Error generating access token: %v", err)
		return "", "", err
	}

	refreshToken, err = generatePASEToken(username, RefreshTokenExpiry)
	if err != nil {
		log.Printf("Error generating refresh token: %v", err)
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// GenerateAccessToken generates only the access token.
func GenerateAccessToken(username string) (string, error) {
	token, err := generatePASEToken(username, AccessTokenExpiry)
	if err != nil {
		log.Printf("Error generating access token: %v", err)
		return "", err
	}
	return token, nil
}

// generatePASEToken generates a PASETO token for the given username and expiry duration.
func generatePASEToken(username string, expiry time.Duration) (string, error) {
	claims := TokenClaims{
		Username: username,
		Role:     RoleAdmin,
		Expiry:   time.Now().Add(expiry),
	}

	symmetricKey := GetSymmetricKey()
	token, err := paseto.NewV2().Encrypt(symmetricKey, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// ValidateToken validates the given token string and checks expiry and role.
func ValidateToken(tokenString string) (*TokenClaims, error) {
	claims, err := parseToken(tokenString)
	if err != nil {
		log.Printf("Token parsing failed: %v", err)
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if time.Now().After(claims.Expiry) {
		return nil, errors.New("token expired")
	}

	if claims.Role != RoleAdmin {
		log.Printf("Insufficient permissions. Required role: %s, found role: %s", RoleAdmin, claims.Role)
		return nil, errors.New("insufficient permissions")
	}

	return claims, nil
}

// parseToken decrypts the token and extracts claims from it.
func parseToken(tokenString string) (*TokenClaims, error) {
	var claims TokenClaims
	symmetricKey := GetSymmetricKey()

	err := paseto.NewV2().Decrypt(tokenString, symmetricKey, &claims, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	return &claims, nil
}
