package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arka-labs/course-market-api/internal/models"
	appErrors "github.com/arka-labs/course-market-api/pkg/errors"
)

// TokenConfig defines token issuance parameters. Each principal class signs
// with its own secret so a learner token can never pass instructor
// verification and vice versa.
type TokenConfig struct {
	LearnerSecret    string
	InstructorSecret string
	Expiry           time.Duration
	Issuer           string
}

// TokenService issues and verifies stateless signed identity tokens.
type TokenService struct {
	config TokenConfig
}

// NewTokenService constructs a TokenService instance.
func NewTokenService(config TokenConfig) *TokenService {
	if config.Expiry <= 0 {
		config.Expiry = 24 * time.Hour
	}
	return &TokenService{config: config}
}

// Expiry returns the configured token lifetime.
func (s *TokenService) Expiry() time.Duration {
	return s.config.Expiry
}

// Issue produces a signed token for the given principal.
func (s *TokenService) Issue(class models.PrincipalClass, principalID, email string) (string, time.Time, error) {
	secret, err := s.secretFor(class)
	if err != nil {
		return "", time.Time{}, err
	}

	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.config.Expiry)
	claims := &models.Claims{
		PrincipalID: principalID,
		Class:       class,
		Email:       email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   principalID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token against the class's secret, returning
// the embedded claims. Bad signatures, expired tokens and tokens minted for
// the other principal class all fail verification.
func (s *TokenService) Verify(class models.PrincipalClass, tokenString string) (*models.Claims, error) {
	secret, err := s.secretFor(class)
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	if claims.Class != class {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token not valid for this principal class")
	}

	return claims, nil
}

func (s *TokenService) secretFor(class models.PrincipalClass) ([]byte, error) {
	switch class {
	case models.ClassLearner:
		return []byte(s.config.LearnerSecret), nil
	case models.ClassInstructor:
		return []byte(s.config.InstructorSecret), nil
	default:
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unknown principal class")
	}
}
