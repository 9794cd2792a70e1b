package jwtutil

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"spc-api/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

var jwtConfig *config.JWTConfig

// UserClaims represents the JWT claims carried by an access token
type UserClaims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// UserID returns the numeric user ID stored in the subject claim
func (c *UserClaims) UserID() uint {
	id, _ := strconv.ParseUint(c.Subject, 10, 32)
	return uint(id)
}

// Initialize sets up the JWT utility with configuration
func Initialize(cfg *config.JWTConfig) {
	jwtConfig = cfg
}

// GenerateAccessToken creates a signed access token embedding the user's
// identity and role claims
func GenerateAccessToken(userID uint, email string, roles []string) (string, error) {
	if jwtConfig == nil {
		return "", errors.New("JWT configuration not initialized")
	}

	now := time.Now()
	claims := &UserClaims{
		Email: email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    jwtConfig.Issuer,
			Audience:  jwt.ClaimStrings{jwtConfig.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtConfig.AccessTokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtConfig.SigningKey))
}

// GenerateRefreshToken produces a high-entropy opaque token with no embedded
// claims. 32 random bytes gives well over the 128 bits needed to make the
// value unguessable.
func GenerateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidateToken validates the token signature, expiry, issuer and audience,
// and returns the claims
func ValidateToken(tokenString string) (*UserClaims, error) {
	return parseToken(tokenString, false)
}

// ClaimsFromExpiredToken verifies the token signature while tolerating an
// expired lifetime. Used when claims must be inspected after the access
// token has naturally expired.
func ClaimsFromExpiredToken(tokenString string) (*UserClaims, error) {
	return parseToken(tokenString, true)
}

func parseToken(tokenString string, allowExpired bool) (*UserClaims, error) {
	if jwtConfig == nil {
		return nil, errors.New("JWT configuration not initialized")
	}

	opts := []jwt.ParserOption{
		jwt.WithIssuer(jwtConfig.Issuer),
		jwt.WithAudience(jwtConfig.Audience),
	}
	if allowExpired {
		// Signature is still verified; only claim validation is skipped.
		opts = []jwt.ParserOption{jwt.WithoutClaimsValidation()}
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&UserClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtConfig.SigningKey), nil
		},
		opts...,
	)

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
