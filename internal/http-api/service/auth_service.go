package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/http-api/validation"
	"reviewhub/internal/mailer"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims is the JWT payload carried by every authenticated request.
type Claims struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// SignUp registers an account (or re-issues a code for an identical
	// repeat request) and emails the confirmation code.
	SignUp(ctx context.Context, username, email string) (*models.User, error)
	// IssueToken exchanges a confirmation code for an access token.
	IssueToken(ctx context.Context, username, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo  repository.UserRepository
	mail      mailer.Mailer
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, mail mailer.Mailer, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		mail:      mail,
		jwtSecret: cfg.JWTSecret,
		tokenTTL:  cfg.AccessTokenTTL,
	}
}

func (s *authService) SignUp(ctx context.Context, username, email string) (*models.User, error) {
	if err := validation.Username(username); err != nil {
		return nil, FieldErrors{"username": err.Error()}
	}

	byName, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	byEmail, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Identical repeat request: same username bound to the same email.
	// Re-issue a fresh code instead of failing.
	if byName != nil && byName.Email == email {
		return byName, s.issueConfirmationCode(ctx, byName)
	}

	// Either field bound to different account data is a conflict. When
	// both belong to two different accounts, report both fields.
	fieldErrs := FieldErrors{}
	if byName != nil {
		fieldErrs["username"] = "username is already taken"
	}
	if byEmail != nil {
		fieldErrs["email"] = "email is already registered"
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent signup may win the race; the unique constraints
		// turn that into the same conflict as the sequential case.
		if repository.IsUniqueViolation(err) {
			return nil, FieldErrors{
				"username": "username or email is already taken",
				"email":    "username or email is already taken",
			}
		}
		return nil, err
	}

	return user, s.issueConfirmationCode(ctx, user)
}

// issueConfirmationCode generates a one-time code, stores only its hash
// and delivers the plaintext by email. An explicit step of signup, not
// a model hook, so it is testable in isolation.
func (s *authService) issueConfirmationCode(ctx context.Context, user *models.User) error {
	code := uuid.New().String()

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash confirmation code: %w", err)
	}
	user.ConfirmationCodeHash = string(hash)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}

	if err := s.mail.SendConfirmationCode(user.Email, user.Username, code); err != nil {
		return fmt.Errorf("deliver confirmation code: %w", err)
	}
	return nil
}

func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	// A mismatch does not consume the code; the client may retry.
	if user.ConfirmationCodeHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.ConfirmationCodeHash), []byte(code)) != nil {
		return "", ErrInvalidCode
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.EffectiveRole(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
