package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	dErrors "anonid/pkg/domain-errors"
	"anonid/pkg/platform/sentinel"
)

const apiKeyBytes = 32

// Service enrolls organizations and exchanges their API keys for bearer
// tokens. The plaintext API key is returned exactly once at enrollment;
// afterwards only its bcrypt hash exists.
type Service struct {
	orgs     OrganizationStore
	tokens   *JWTService
	tokenTTL time.Duration
}

func NewService(orgs OrganizationStore, tokens *JWTService, tokenTTL time.Duration) *Service {
	return &Service{orgs: orgs, tokens: tokens, tokenTTL: tokenTTL}
}

// Enroll registers a new organization and returns its credentials.
func (s *Service) Enroll(ctx context.Context, name string) (Credentials, error) {
	if name == "" {
		return Credentials{}, dErrors.New(dErrors.CodeBadRequest, "organization name is required")
	}

	apiKey, err := generateAPIKey()
	if err != nil {
		return Credentials{}, fmt.Errorf("generate api key: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		return Credentials{}, fmt.Errorf("hash api key: %w", err)
	}

	org := Organization{
		ID:         uuid.NewString(),
		Name:       name,
		APIKeyHash: hash,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.orgs.Save(ctx, org); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Credentials{}, dErrors.New(dErrors.CodeConflict, "organization already enrolled")
		}
		return Credentials{}, fmt.Errorf("save organization: %w", err)
	}

	return Credentials{
		OrganizationID: org.ID,
		Name:           org.Name,
		APIKey:         apiKey,
	}, nil
}

// IssueToken verifies an organization's API key and returns a bearer token.
// Lookup misses and hash mismatches produce the same error so callers cannot
// probe for enrolled names.
func (s *Service) IssueToken(ctx context.Context, name, apiKey string) (Token, error) {
	org, err := s.orgs.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Token{}, dErrors.New(dErrors.CodeUnauthorized, "invalid organization credentials")
		}
		return Token{}, fmt.Errorf("find organization: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(org.APIKeyHash, []byte(apiKey)); err != nil {
		return Token{}, dErrors.New(dErrors.CodeUnauthorized, "invalid organization credentials")
	}

	signed, err := s.tokens.GenerateAccessToken(org, s.tokenTTL)
	if err != nil {
		return Token{}, fmt.Errorf("sign access token: %w", err)
	}
	return Token{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
	}, nil
}

func generateAPIKey() (string, error) {
	raw := make([]byte, apiKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
