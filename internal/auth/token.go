// Package auth implements the magic-link login flow and the bearer
// tokens that scope every request to its owner.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// TokenCodec mints and verifies HMAC-SHA256 signed bearer tokens of
// the form base64(userID|expiryUnix).signature. Tokens expire; there
// is no per-token revocation beyond rotating the secret.
type TokenCodec struct {
	secret []byte
}

func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

func (c *TokenCodec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Mint issues a bearer token for the user, valid until expiry.
func (c *TokenCodec) Mint(userID uuid.UUID, expiry time.Time) string {
	payload := base64.RawURLEncoding.EncodeToString(
		[]byte(fmt.Sprintf("%s|%d", userID, expiry.Unix())))
	return payload + "." + c.sign(payload)
}

// Parse verifies a bearer token and returns the user id it names.
func (c *TokenCodec) Parse(token string, now time.Time) (uuid.UUID, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	if !hmac.Equal([]byte(sig), []byte(c.sign(payload))) {
		return uuid.Nil, ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	idStr, expStr, ok := strings.Cut(string(raw), "|")
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	if now.After(time.Unix(exp, 0)) {
		return uuid.Nil, ErrExpiredToken
	}
	return id, nil
}

// MintFeedToken derives the calendar feed token for a user. The token
// carries no expiry; rotating the server secret invalidates every
// outstanding feed URL at once.
func (c *TokenCodec) MintFeedToken(userID uuid.UUID) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(userID.String()))
	return payload + "." + c.sign(payload)
}

// ParseFeedToken verifies a calendar feed token.
func (c *TokenCodec) ParseFeedToken(token string) (uuid.UUID, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	if !hmac.Equal([]byte(sig), []byte(c.sign(payload))) {
		return uuid.Nil, ErrInvalidToken
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(string(raw))
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
