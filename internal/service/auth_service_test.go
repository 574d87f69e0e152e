package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/arka-labs/course-market-api/internal/models"
	appErrors "github.com/arka-labs/course-market-api/pkg/errors"
)

type mockLearnerRepo struct {
	byEmail   *models.Learner
	byID      *models.Learner
	createErr error
	created   *models.Learner
}

func (m *mockLearnerRepo) FindByEmail(ctx context.Context, email string) (*models.Learner, error) {
	if m.byEmail == nil {
		return nil, sql.ErrNoRows
	}
	return m.byEmail, nil
}

func (m *mockLearnerRepo) FindByID(ctx context.Context, id string) (*models.Learner, error) {
	if m.byID == nil {
		return nil, sql.ErrNoRows
	}
	return m.byID, nil
}

func (m *mockLearnerRepo) Create(ctx context.Context, learner *models.Learner) error {
	if m.createErr != nil {
		return m.createErr
	}
	learner.ID = "learner-1"
	m.created = learner
	return nil
}

type mockInstructorRepo struct {
	byEmail   *models.Instructor
	byID      *models.Instructor
	createErr error
	created   *models.Instructor
}

func (m *mockInstructorRepo) FindByEmail(ctx context.Context, email string) (*models.Instructor, error) {
	if m.byEmail == nil {
		return nil, sql.ErrNoRows
	}
	return m.byEmail, nil
}

func (m *mockInstructorRepo) FindByID(ctx context.Context, id string) (*models.Instructor, error) {
	if m.byID == nil {
		return nil, sql.ErrNoRows
	}
	return m.byID, nil
}

func (m *mockInstructorRepo) Create(ctx context.Context, instructor *models.Instructor) error {
	if m.createErr != nil {
		return m.createErr
	}
	instructor.ID = "instructor-1"
	m.created = instructor
	return nil
}

func newTestAuthService(learners *mockLearnerRepo, instructors *mockInstructorRepo) *AuthService {
	tokens := NewTokenService(TokenConfig{
		LearnerSecret:    "learner-secret",
		InstructorSecret: "instructor-secret",
		Expiry:           time.Hour,
	})
	return NewAuthService(learners, instructors, tokens, validator.New(), zap.NewNop(), bcrypt.MinCost)
}

func TestAuthRegisterLearner(t *testing.T) {
	learners := &mockLearnerRepo{}
	svc := newTestAuthService(learners, &mockInstructorRepo{})

	info, err := svc.Register(context.Background(), models.ClassLearner, models.RegisterRequest{
		Email:     "learner@example.com",
		Password:  "secret123",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "learner-1", info.ID)
	assert.Equal(t, models.ClassLearner, info.Class)
	require.NotNil(t, learners.created)
	assert.NotEqual(t, "secret123", learners.created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(learners.created.PasswordHash), []byte("secret123")))
}

func TestAuthRegisterClampsBcryptCost(t *testing.T) {
	learners := &mockLearnerRepo{}
	tokens := NewTokenService(TokenConfig{
		LearnerSecret:    "learner-secret",
		InstructorSecret: "instructor-secret",
		Expiry:           time.Hour,
	})
	// Cost 0 is the config default; below bcrypt.MinCost it must fall back
	// to the library default rather than weaken the hash.
	svc := NewAuthService(learners, &mockInstructorRepo{}, tokens, validator.New(), zap.NewNop(), 0)

	_, err := svc.Register(context.Background(), models.ClassLearner, models.RegisterRequest{
		Email:     "learner@example.com",
		Password:  "secret123",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	require.NotNil(t, learners.created)

	cost, err := bcrypt.Cost([]byte(learners.created.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	learners := &mockLearnerRepo{createErr: fmt.Errorf("create learner: %w", &pq.Error{Code: "23505", Constraint: "learners_email_key"})}
	svc := newTestAuthService(learners, &mockInstructorRepo{})

	_, err := svc.Register(context.Background(), models.ClassLearner, models.RegisterRequest{
		Email:     "learner@example.com",
		Password:  "secret123",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicateIdentity.Code, appErrors.FromError(err).Code)
}

func TestAuthRegisterInvalidPayload(t *testing.T) {
	svc := newTestAuthService(&mockLearnerRepo{}, &mockInstructorRepo{})

	_, err := svc.Register(context.Background(), models.ClassLearner, models.RegisterRequest{
		Email:    "not-an-email",
		Password: "short",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginSuccess(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	instructors := &mockInstructorRepo{byEmail: &models.Instructor{
		ID:           "instructor-1",
		Email:        "instructor@example.com",
		PasswordHash: string(hash),
		FirstName:    "Grace",
		LastName:     "Hopper",
	}}
	svc := newTestAuthService(&mockLearnerRepo{}, instructors)

	res, err := svc.Login(context.Background(), models.ClassInstructor, models.LoginRequest{
		Email:    "instructor@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	assert.Equal(t, models.ClassInstructor, res.Principal.Class)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	learners := &mockLearnerRepo{byEmail: &models.Learner{
		ID:           "learner-1",
		Email:        "learner@example.com",
		PasswordHash: string(hash),
	}}
	svc := newTestAuthService(learners, &mockInstructorRepo{})

	_, err := svc.Login(context.Background(), models.ClassLearner, models.LoginRequest{
		Email:    "learner@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
	assert.NotEqual(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestAuthLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(&mockLearnerRepo{}, &mockInstructorRepo{})

	_, err := svc.Login(context.Background(), models.ClassLearner, models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAuthClassesAreDisjoint(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	learners := &mockLearnerRepo{byEmail: &models.Learner{
		ID:           "learner-1",
		Email:        "shared@example.com",
		PasswordHash: string(hash),
	}}
	svc := newTestAuthService(learners, &mockInstructorRepo{})

	// The email exists as a learner but not as an instructor.
	_, err := svc.Login(context.Background(), models.ClassInstructor, models.LoginRequest{
		Email:    "shared@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAuthProfile(t *testing.T) {
	learners := &mockLearnerRepo{byID: &models.Learner{
		ID:        "learner-1",
		Email:     "learner@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}}
	svc := newTestAuthService(learners, &mockInstructorRepo{})

	info, err := svc.Profile(context.Background(), models.ClassLearner, "learner-1")
	require.NoError(t, err)
	assert.Equal(t, "learner@example.com", info.Email)
	assert.Equal(t, models.ClassLearner, info.Class)
}
