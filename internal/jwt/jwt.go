// Package jwt issues and validates the HS256 access tokens used for
// API authentication.
package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultKID  = "1"
	JWTDuration = 24 * time.Hour
	issuer      = "foodgram"
)

var ErrInvalidSubject = errors.New("token subject is not a user id")

type Claims struct {
	jwt.RegisteredClaims
}

// GenerateJWT signs a token for userID. The secret version is written to
// the kid header so secrets can be rotated.
func GenerateJWT(userID int64, secret []byte, version string, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(JWTDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = version

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateJWT verifies rawToken and returns the user id in its subject.
// Expired tokens fail with an error matching jwt.ErrTokenExpired.
func ValidateJWT(rawToken, version string, secret []byte) (int64, error) {
	keyFunc := func(token *jwt.Token) (any, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("missing/invalid kid value")
		}
		if kid != version {
			return nil, fmt.Errorf("verifying KID value, value=%q", kid)
		}
		return secret, nil
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(rawToken, &claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidSubject
	}
	return userID, nil
}
