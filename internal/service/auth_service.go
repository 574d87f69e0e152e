package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/arka-labs/course-market-api/internal/models"
	"github.com/arka-labs/course-market-api/internal/repository"
	appErrors "github.com/arka-labs/course-market-api/pkg/errors"
)

type learnerCredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Learner, error)
	FindByID(ctx context.Context, id string) (*models.Learner, error)
	Create(ctx context.Context, learner *models.Learner) error
}

type instructorCredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Instructor, error)
	FindByID(ctx context.Context, id string) (*models.Instructor, error)
	Create(ctx context.Context, instructor *models.Instructor) error
}

// AuthService owns credential issuance and verification for both principal
// classes. Passwords are stored only as bcrypt hashes.
type AuthService struct {
	learners    learnerCredentialRepository
	instructors instructorCredentialRepository
	tokens      *TokenService
	validator   *validator.Validate
	logger      *zap.Logger
	bcryptCost  int
}

// NewAuthService constructs an AuthService instance. A cost below the
// bcrypt minimum falls back to the library default rather than weakening
// the hash.
func NewAuthService(learners learnerCredentialRepository, instructors instructorCredentialRepository, tokens *TokenService, validate *validator.Validate, logger *zap.Logger, bcryptCost int) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		learners:    learners,
		instructors: instructors,
		tokens:      tokens,
		validator:   validate,
		logger:      logger,
		bcryptCost:  bcryptCost,
	}
}

// credentialRecord is the class-independent view of a stored principal.
type credentialRecord struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
}

// Register creates a principal in the class's namespace and returns its
// identity. The same email may exist in the other class.
func (s *AuthService) Register(ctx context.Context, class models.PrincipalClass, req models.RegisterRequest) (*models.PrincipalInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid signup payload")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	record := credentialRecord{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	id, err := s.createPrincipal(ctx, class, record)
	if err != nil {
		if repository.IsUniqueViolation(err, "") {
			return nil, appErrors.Clone(appErrors.ErrDuplicateIdentity, "email already registered")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create account")
	}

	return &models.PrincipalInfo{
		ID:        id,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Class:     class,
	}, nil
}

// Login authenticates a principal and returns an issued token. A wrong
// password reports invalid credentials, never a missing account.
func (s *AuthService) Login(ctx context.Context, class models.PrincipalClass, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	record, err := s.findByEmail(ctx, class, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no account for this email")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch account")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "incorrect password")
	}

	token, expiresAt, err := s.tokens.Issue(class, record.ID, record.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue token")
	}
	issuedAt := expiresAt.Add(-s.tokens.Expiry())

	s.logger.Info("principal logged in", zap.String("class", string(class)), zap.String("principal_id", record.ID))

	return &models.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.tokens.Expiry().Seconds()),
		IssuedAt:  issuedAt,
		Principal: models.PrincipalInfo{
			ID:        record.ID,
			Email:     record.Email,
			FirstName: record.FirstName,
			LastName:  record.LastName,
			Class:     class,
		},
	}, nil
}

// Profile re-reads the principal record behind a verified token.
func (s *AuthService) Profile(ctx context.Context, class models.PrincipalClass, principalID string) (*models.PrincipalInfo, error) {
	record, err := s.findByID(ctx, class, principalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch account")
	}

	return &models.PrincipalInfo{
		ID:        record.ID,
		Email:     record.Email,
		FirstName: record.FirstName,
		LastName:  record.LastName,
		Class:     class,
	}, nil
}

func (s *AuthService) createPrincipal(ctx context.Context, class models.PrincipalClass, record credentialRecord) (string, error) {
	switch class {
	case models.ClassLearner:
		learner := &models.Learner{
			Email:        record.Email,
			PasswordHash: record.PasswordHash,
			FirstName:    record.FirstName,
			LastName:     record.LastName,
		}
		if err := s.learners.Create(ctx, learner); err != nil {
			return "", err
		}
		return learner.ID, nil
	case models.ClassInstructor:
		instructor := &models.Instructor{
			Email:        record.Email,
			PasswordHash: record.PasswordHash,
			FirstName:    record.FirstName,
			LastName:     record.LastName,
		}
		if err := s.instructors.Create(ctx, instructor); err != nil {
			return "", err
		}
		return instructor.ID, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, "unknown principal class")
	}
}

func (s *AuthService) findByEmail(ctx context.Context, class models.PrincipalClass, email string) (*credentialRecord, error) {
	switch class {
	case models.ClassLearner:
		learner, err := s.learners.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return &credentialRecord{ID: learner.ID, Email: learner.Email, PasswordHash: learner.PasswordHash, FirstName: learner.FirstName, LastName: learner.LastName}, nil
	case models.ClassInstructor:
		instructor, err := s.instructors.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return &credentialRecord{ID: instructor.ID, Email: instructor.Email, PasswordHash: instructor.PasswordHash, FirstName: instructor.FirstName, LastName: instructor.LastName}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown principal class")
	}
}

func (s *AuthService) findByID(ctx context.Context, class models.PrincipalClass, id string) (*credentialRecord, error) {
	switch class {
	case models.ClassLearner:
		learner, err := s.learners.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &credentialRecord{ID: learner.ID, Email: learner.Email, PasswordHash: learner.PasswordHash, FirstName: learner.FirstName, LastName: learner.LastName}, nil
	case models.ClassInstructor:
		instructor, err := s.instructors.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &credentialRecord{ID: instructor.ID, Email: instructor.Email, PasswordHash: instructor.PasswordHash, FirstName: instructor.FirstName, LastName: instructor.LastName}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown principal class")
	}
}
