package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"example.com/packpal/internal/models"
	"example.com/packpal/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Session is the result of a successful registration or login.
type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AuthService issues and validates bearer tokens and manages accounts.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Verify(ctx context.Context, token string) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context, actor *models.User) ([]*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, updates ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, userID uint, current, next string) error
	UpdateUserSettings(ctx context.Context, userID uint, section string, values json.RawMessage) (json.RawMessage, error)
	UpdateUserRole(ctx context.Context, actor *models.User, userID uint, role models.Role) (*models.User, error)
}

// ProfileUpdate carries optional profile field changes; nil means unchanged.
type ProfileUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Position *string `json:"position"`
	Company  *string `json:"company"`
	Phone    *string `json:"phone"`
}

// Per-user settings sections carried over from the account settings page.
var settingsSections = map[string]bool{
	"notifications": true,
	"display":       true,
	"privacy":       true,
	"packaging":     true,
	"integrations":  true,
	"accessibility": true,
}

type authService struct {
	users    repository.UserRepository
	log      *logrus.Logger
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService creates a new auth service instance
func NewAuthService(users repository.UserRepository, log *logrus.Logger, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		users:    users,
		log:      log,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, errors.Wrap(ErrValidation, "name, email and password are required")
	}

	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	now := time.Now()
	user := &models.User{
		Name:             name,
		Email:            email,
		PasswordHash:     string(hash),
		Role:             models.RoleMember,
		Username:         strings.ReplaceAll(strings.ToLower(name), " ", ""),
		RegistrationDate: now,
		LastLogin:        &now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("User registered")

	return &Session{User: user, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.users.UpdateUser(ctx, user); err != nil {
		// Stamping last login is a secondary write
		s.log.WithError(err).Warn("Failed to update last login")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &Session{User: user, Token: token}, nil
}

func (s *authService) Verify(ctx context.Context, tokenStr string) (*models.User, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	uid, ok := claims["uid"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	// Always resolve the principal from the store so the current role is
	// used, never the role at token issuance.
	user, err := s.users.FindUserByID(ctx, uint(uid))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) ListUsers(ctx context.Context, actor *models.User) ([]*models.User, error) {
	if !actor.Role.AdminCapable() {
		return nil, ErrForbidden
	}
	return s.users.ListUsers(ctx)
}

func (s *authService) UpdateProfile(ctx context.Context, userID uint, updates ProfileUpdate) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if updates.Name != nil && *updates.Name != "" {
		user.Name = *updates.Name
	}
	if updates.Email != nil && *updates.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(*updates.Email))
	}
	if updates.Position != nil {
		user.Position = *updates.Position
	}
	if updates.Company != nil {
		user.Company = *updates.Company
	}
	if updates.Phone != nil {
		user.Phone = *updates.Phone
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	if next == "" {
		return errors.Wrap(ErrValidation, "new password is required")
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	user.PasswordHash = string(hash)
	return s.users.UpdateUser(ctx, user)
}

func (s *authService) UpdateUserSettings(ctx context.Context, userID uint, section string, values json.RawMessage) (json.RawMessage, error) {
	if !settingsSections[section] {
		return nil, errors.Wrapf(ErrValidation, "unknown settings section %q", section)
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings := map[string]json.RawMessage{}
	if user.Settings != "" {
		if err := json.Unmarshal([]byte(user.Settings), &settings); err != nil {
			s.log.WithError(err).WithField("user_id", userID).Warn("Resetting unreadable user settings")
			settings = map[string]json.RawMessage{}
		}
	}
	settings[section] = values

	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}
	user.Settings = string(raw)

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return values, nil
}

func (s *authService) UpdateUserRole(ctx context.Context, actor *models.User, userID uint, role models.Role) (*models.User, error) {
	if !actor.Role.AdminCapable() {
		return nil, ErrForbidden
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"actor_id": actor.ID,
		"user_id":  user.ID,
		"role":     role,
	}).Info("User role updated")

	return user, nil
}

func (s *authService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
		"jti": uuid.New().String(),
	}).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return token, nil
}
