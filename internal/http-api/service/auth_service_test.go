package service

import (
	"context"
	"testing"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthService(userRepo *MockUserRepository, mail *MockMailer) AuthService {
	cfg := &config.Config{
		JWTSecret:      "test-secret",
		AccessTokenTTL: time.Hour,
	}
	return NewAuthService(userRepo, mail, cfg)
}

func TestSignUp_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	mail := new(MockMailer)
	svc := newAuthService(userRepo, mail)

	userRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	userRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	var sentCode string
	mail.On("SendConfirmationCode", "alice@example.com", "alice", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sentCode = args.String(2) }).
		Return(nil)

	user, err := svc.SignUp(context.Background(), "alice", "alice@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEmpty(t, sentCode)
	// Only the hash is stored, and it matches the emailed code.
	assert.NotEqual(t, sentCode, user.ConfirmationCodeHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.ConfirmationCodeHash), []byte(sentCode)))

	userRepo.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestSignUp_ReservedUsername(t *testing.T) {
	svc := newAuthService(new(MockUserRepository), new(MockMailer))

	for _, username := range []string{"me", "ME", "Me", "mE"} {
		_, err := svc.SignUp(context.Background(), username, "someone@example.com")

		var fieldErrs FieldErrors
		assert.ErrorAs(t, err, &fieldErrs, "username %q must fail validation", username)
		assert.Contains(t, fieldErrs, "username")
	}
}

func TestSignUp_RepeatRequestReissuesCode(t *testing.T) {
	userRepo := new(MockUserRepository)
	mail := new(MockMailer)
	svc := newAuthService(userRepo, mail)

	existing := &models.User{ID: "user-1", Username: "alice", Email: "alice@example.com"}
	userRepo.On("FindByUsername", mock.Anything, "alice").Return(existing, nil)
	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(existing, nil)
	userRepo.On("Save", mock.Anything, existing).Return(nil)
	mail.On("SendConfirmationCode", "alice@example.com", "alice", mock.AnythingOfType("string")).Return(nil)

	user, err := svc.SignUp(context.Background(), "alice", "alice@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mail.AssertExpectations(t)
}

func TestSignUp_UsernameBoundToOtherEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, new(MockMailer))

	existing := &models.User{ID: "user-1", Username: "alice", Email: "other@example.com"}
	userRepo.On("FindByUsername", mock.Anything, "alice").Return(existing, nil)
	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.SignUp(context.Background(), "alice", "alice@example.com")

	var fieldErrs FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "username")
}

func TestSignUp_EmailAndUsernameOnDifferentAccounts(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, new(MockMailer))

	byName := &models.User{ID: "user-1", Username: "alice", Email: "one@example.com"}
	byEmail := &models.User{ID: "user-2", Username: "bob", Email: "alice@example.com"}
	userRepo.On("FindByUsername", mock.Anything, "alice").Return(byName, nil)
	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(byEmail, nil)

	_, err := svc.SignUp(context.Background(), "alice", "alice@example.com")

	// Both fields conflict; the request is rejected, nothing is created.
	var fieldErrs FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "username")
	assert.Contains(t, fieldErrs, "email")
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIssueToken_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, new(MockMailer))

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-code"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	user := &models.User{
		ID:                   "user-1",
		Username:             "alice",
		Role:                 models.RoleModerator,
		ConfirmationCodeHash: string(hash),
	}
	userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

	token, err := svc.IssueToken(context.Background(), "alice", "secret-code")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleModerator, claims.Role)
}

func TestIssueToken_SuperuserActsAsAdmin(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, new(MockMailer))

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-code"), bcrypt.DefaultCost)
	user := &models.User{
		ID:                   "user-1",
		Username:             "root",
		Role:                 models.RoleUser,
		Superuser:            true,
		ConfirmationCodeHash: string(hash),
	}
	userRepo.On("FindByUsername", mock.Anything, "root").Return(user, nil)

	token, err := svc.IssueToken(context.Background(), "root", "secret-code")
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestIssueToken_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, new(MockMailer))

	userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.IssueToken(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIssueToken_WrongCode(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, new(MockMailer))

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-code"), bcrypt.DefaultCost)
	user := &models.User{
		ID:                   "user-1",
		Username:             "alice",
		ConfirmationCodeHash: string(hash),
	}
	userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

	_, err := svc.IssueToken(context.Background(), "alice", "wrong-code")
	assert.ErrorIs(t, err, ErrInvalidCode)

	// The code is not consumed by a failed attempt.
	token, err := svc.IssueToken(context.Background(), "alice", "secret-code")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newAuthService(new(MockUserRepository), new(MockMailer))

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
