package auth

import (
	"context"
	"errors"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/models"
	"CourseHub/pkg/logger"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthService struct {
	log        logger.Log
	jwtManager *JWTManager
	userRepo   UserRepo
}

func NewAuthService(l logger.Log, manager *JWTManager, userRepo UserRepo) *AuthService {
	return &AuthService{
		log:        l,
		jwtManager: manager,
		userRepo:   userRepo,
	}
}

// Login checks the submitted credentials against the stored salted digest and
// issues a signed token. A missing user and a wrong password are deliberately
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" {
		return nil, "", app_errors.ErrEmailRequired
	}
	if password == "" {
		return nil, "", app_errors.ErrPasswordRequired
	}

	user, err := s.userRepo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) {
			s.log.Warn("login attempt for unknown email", "email", email)
			return nil, "", app_errors.ErrIncorrectPassword
		}
		return nil, "", err
	}

	if !VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		s.log.Warn("login attempt with invalid password", "email", email)
		return nil, "", app_errors.ErrIncorrectPassword
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("login successful", "email", email, "user_id", user.ID)
	return user, token, nil
}

func (s *AuthService) CreateUser(ctx context.Context, email, password, pictureURL string, isAdmin bool) (*models.User, error) {
	if email == "" {
		return nil, app_errors.ErrEmailRequired
	}
	if password == "" {
		return nil, app_errors.ErrPasswordRequired
	}

	salt, err := NewSalt()
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(password, salt)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
		PictureURL:   pictureURL,
		IsAdmin:      isAdmin,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user created", "email", email, "user_id", user.ID)
	return user, nil
}

// Claims is the token verification entry point used by the auth middleware.
func (s *AuthService) Claims(token string) (*models.AuthClaims, error) {
	return s.jwtManager.Claims(token)
}
