package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db"
	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"
)

const (
	pendingTTL  = 10 * time.Minute
	codeLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Service implements the magic-link flow: request-link parks a
// (token, code) pair in the pending store, verify consumes it and
// mints a session token. Without an email sender the link and code are
// logged for the operator to relay.
type Service struct {
	store    db.Store
	pending  PendingStore
	codec    *TokenCodec
	tokenTTL time.Duration
}

func NewService(store db.Store, pending PendingStore, codec *TokenCodec, tokenTTL time.Duration) *Service {
	return &Service{store: store, pending: pending, codec: codec, tokenTTL: tokenTTL}
}

// RequestLink parks a pending login and returns its link token and
// short code.
func (s *Service) RequestLink(email string) (token, code string, err error) {
	if email == "" {
		return "", "", fmt.Errorf("email required")
	}

	token, err = randomHex(16)
	if err != nil {
		return "", "", fmt.Errorf("error generating token: %w", err)
	}
	code, err = randomCode(6)
	if err != nil {
		return "", "", fmt.Errorf("error generating code: %w", err)
	}

	s.pending.Put(token, PendingLogin{
		Email:   email,
		Code:    code,
		Expires: time.Now().Add(pendingTTL),
	})

	log.Printf("[auth] login link token for %s: %s (code %s)", email, token, code)
	return token, code, nil
}

// Verify consumes a pending login by link token or by short code,
// lazily creates the user, and returns a minted bearer token.
func (s *Service) Verify(ctx context.Context, token, code string) (string, *models.User, error) {
	var login PendingLogin
	var ok bool
	if token != "" {
		login, ok = s.pending.Consume(token)
	} else if code != "" {
		login, ok = s.pending.ConsumeByCode(strings.ToUpper(code))
	}
	if !ok {
		return "", nil, ErrInvalidToken
	}

	user, err := s.store.GetOrCreateUser(ctx, login.Email)
	if err != nil {
		return "", nil, fmt.Errorf("error resolving user: %w", err)
	}

	bearer := s.codec.Mint(user.ID, time.Now().Add(s.tokenTTL))
	return bearer, user, nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func randomCode(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = codeLetters[int(b)%len(codeLetters)]
	}
	return string(out), nil
}
