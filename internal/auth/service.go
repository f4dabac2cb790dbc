package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/speechcoach-backend/internal/generation"
	"github.com/yungbote/speechcoach-backend/internal/observability"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
)

// ProbePrompt is sent once to confirm a key works.
const ProbePrompt = "Hello"

var errNoPasswords = errors.New("password login is not configured")

type Service interface {
	// LoginWithAPIKey returns the key once a single probe call succeeds with it.
	LoginWithAPIKey(ctx context.Context, apiKey string) (string, error)
	// LoginWithPassword returns the configured default key when password matches one of the hashes.
	LoginWithPassword(ctx context.Context, password string) (string, error)
	PasswordEnabled() bool
}

type service struct {
	log        *logger.Logger
	factory    generation.Factory
	defaultKey string
	hashes     [][]byte
}

func NewService(log *logger.Logger, factory generation.Factory, defaultKey string, passwordHashes []string) Service {
	hashes := make([][]byte, 0, len(passwordHashes))
	for _, h := range passwordHashes {
		if h = strings.TrimSpace(h); h != "" {
			hashes = append(hashes, []byte(h))
		}
	}
	return &service{
		log:        log.With("service", "AuthService"),
		factory:    factory,
		defaultKey: defaultKey,
		hashes:     hashes,
	}
}

func (s *service) PasswordEnabled() bool {
	return len(s.hashes) > 0 && s.defaultKey != ""
}

func (s *service) LoginWithAPIKey(ctx context.Context, apiKey string) (string, error) {
	apiKey = strings.TrimSpace(apiKey)
	err := s.probe(ctx, apiKey)
	observability.Current().IncAuthAttempt(MethodAPIKey, err == nil)
	if err != nil {
		s.log.Warn("API key login failed", "provider", s.factory.Provider(), "error", err)
		return "", &AuthError{Method: MethodAPIKey, Err: err}
	}
	s.log.Info("API key login succeeded", "provider", s.factory.Provider())
	return apiKey, nil
}

func (s *service) probe(ctx context.Context, apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("api key is empty")
	}
	c, err := s.factory.New(ctx, apiKey)
	if err != nil {
		return err
	}
	defer generation.Close(c)
	if _, err := c.GenerateText(ctx, ProbePrompt); err != nil {
		return err
	}
	return nil
}

func (s *service) LoginWithPassword(ctx context.Context, password string) (string, error) {
	ok := s.matches(password)
	observability.Current().IncAuthAttempt(MethodPassword, ok)
	if !ok {
		var cause error
		if !s.PasswordEnabled() {
			cause = errNoPasswords
		}
		s.log.Warn("Password login failed", "configured", s.PasswordEnabled())
		return "", &AuthError{Method: MethodPassword, Err: cause}
	}
	s.log.Info("Password login succeeded")
	return s.defaultKey, nil
}

func (s *service) matches(password string) bool {
	if password == "" || !s.PasswordEnabled() {
		return false
	}
	for _, h := range s.hashes {
		if bcrypt.CompareHashAndPassword(h, []byte(password)) == nil {
			return true
		}
	}
	return false
}
