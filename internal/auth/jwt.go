// Package auth issues and verifies the signed access tokens handed out on login.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/emzola/bookstore/data"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid access token")

// Claims carries the identity of a principal inside an access token.
type Claims struct {
	Email    string   `json:"email"`
	FullName string   `json:"fullName"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// Issuer signs and parses HS256 access tokens.
type Issuer struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewIssuer creates an Issuer with the given signing key, issuer and audience.
func NewIssuer(key, issuer, audience string, ttl time.Duration) *Issuer {
	return &Issuer{
		key:      []byte(key),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}
}

// Generate returns a signed token for user together with its unique id.
func (i *Issuer) Generate(user *data.User) (string, string, error) {
	now := time.Now()
	jti := uuid.NewString()
	claims := Claims{
		Email:    user.Email,
		FullName: user.FullName,
		Roles:    user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", "", err
	}
	return token, jti, nil
}

// Parse verifies tokenString and returns the principal it describes.
func (i *Issuer) Parse(tokenString string) (*data.User, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return i.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id < 1 {
		return nil, ErrInvalidToken
	}
	return &data.User{
		ID:             id,
		Email:          claims.Email,
		FullName:       claims.FullName,
		Roles:          claims.Roles,
		EmailConfirmed: true,
	}, nil
}
