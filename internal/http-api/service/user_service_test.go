package service

import (
	"context"
	"errors"
	"testing"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestUserCreate_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", mock.Anything, "bob@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "bob",
		Email:    "bob@example.com",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	userRepo.AssertExpectations(t)
}

func TestUserCreate_UnknownRole(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Role:     models.Role("overlord"),
	})

	var fieldErrs FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "role")
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserCreate_TakenUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("FindByUsername", mock.Anything, "bob").
		Return(&models.User{ID: "user-1", Username: "bob"}, nil)
	userRepo.On("FindByEmail", mock.Anything, "bob@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "bob",
		Email:    "bob@example.com",
	})

	var fieldErrs FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "username")
}

func TestUserUpdate_AdminChangesRole(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	user := &models.User{ID: "user-1", Username: "bob", Role: models.RoleUser}
	userRepo.On("FindByUsername", mock.Anything, "bob").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	role := models.RoleModerator
	updated, err := svc.Update(context.Background(), "bob", dto.UpdateUserRequest{Role: &role})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleModerator, updated.Role)
}

func TestUserUpdateProfile_RoleIgnored(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	user := &models.User{ID: "user-1", Username: "bob", Role: models.RoleUser}
	userRepo.On("FindByID", mock.Anything, "user-1").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	role := models.RoleAdmin
	bio := "hello"
	updated, err := svc.UpdateProfile(context.Background(), "user-1", dto.UpdateUserRequest{
		Role: &role,
		Bio:  &bio,
	})

	assert.NoError(t, err)
	// The bio patch applies; the role field of a self-patch does not.
	assert.Equal(t, "hello", updated.Bio)
	assert.Equal(t, models.RoleUser, updated.Role)
}

func TestUserUpdate_NewUsernameTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	user := &models.User{ID: "user-1", Username: "bob", Role: models.RoleUser}
	userRepo.On("FindByUsername", mock.Anything, "bob").Return(user, nil)
	userRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&models.User{ID: "user-2", Username: "alice"}, nil)

	newName := "alice"
	_, err := svc.Update(context.Background(), "bob", dto.UpdateUserRequest{Username: &newName})

	var fieldErrs FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "username")
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserCreate_LookupErrorPropagates(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("FindByUsername", mock.Anything, "bob").
		Return(nil, errors.New("connection reset"))

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "bob",
		Email:    "bob@example.com",
	})

	// A transient lookup failure must not read as "username available".
	assert.Error(t, err)
	var fieldErrs FieldErrors
	assert.False(t, errors.As(err, &fieldErrs))
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserUpdateProfile_EmailLookupErrorPropagates(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	user := &models.User{ID: "user-1", Username: "bob", Email: "bob@example.com"}
	userRepo.On("FindByID", mock.Anything, "user-1").Return(user, nil)
	userRepo.On("FindByEmail", mock.Anything, "new@example.com").
		Return(nil, errors.New("connection reset"))

	email := "new@example.com"
	_, err := svc.UpdateProfile(context.Background(), "user-1", dto.UpdateUserRequest{Email: &email})

	assert.Error(t, err)
	assert.Equal(t, "bob@example.com", user.Email)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserGetByUsername_NotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserDelete(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	user := &models.User{ID: "user-1", Username: "bob"}
	userRepo.On("FindByUsername", mock.Anything, "bob").Return(user, nil)
	userRepo.On("Delete", mock.Anything, user).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), "bob"))
	userRepo.AssertExpectations(t)
}
