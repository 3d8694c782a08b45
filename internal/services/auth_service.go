package services

import (
	"errors"
	"fmt"
	"strings"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/config"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	verificationCodeLength = 10
	resetTokenLength       = 20
)

type AuthService interface {
	// Register stores a pending registration and emails a verification
	// code. Re-registering the same email replaces the previous code.
	Register(db *gorm.DB, req *dto.RegisterRequest) error

	// VerifyAccount promotes a pending registration into a real account
	// and signs the new user in.
	VerifyAccount(db *gorm.DB, req *dto.VerifyAccountRequest) (*dto.AuthResponse, error)

	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)

	// RequestPasswordReset issues a reset token and emails the reset link.
	RequestPasswordReset(db *gorm.DB, emailAddr string) error

	// VerifyResetLink checks an emailed (email, token) pair without
	// consuming it.
	VerifyResetLink(db *gorm.DB, emailAddr, token string) error

	// SetNewPassword consumes a valid reset token and replaces the
	// account password.
	SetNewPassword(db *gorm.DB, req *dto.SetNewPasswordRequest) error
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	tokenRepo     repositories.TokenRepository
	emailProvider email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		emailProvider: emailProvider,
	}
}

func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) error {
	emailAddr := normalizeEmail(req.Email)

	exists, err := s.userRepo.EmailExists(db, emailAddr)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if exists {
		return apperrors.ErrEmailAlreadyRegistered
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ValidationError(err.Error())
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	code := auth.RandomString(verificationCodeLength)

	if _, err := s.userRepo.UpsertPendingUser(db, emailAddr, hashedPassword, code); err != nil {
		return apperrors.InternalError(err)
	}

	s.sendVerificationEmail(emailAddr, code)

	return nil
}

func (s *AuthServiceImpl) VerifyAccount(db *gorm.DB, req *dto.VerifyAccountRequest) (*dto.AuthResponse, error) {
	pending, err := s.userRepo.FindPendingByEmailAndCode(db, normalizeEmail(req.Email), req.Code)
	if err != nil {
		if errors.Is(err, repositories.ErrPendingUserNotFound) {
			return nil, apperrors.ErrInvalidVerificationCode
		}
		return nil, apperrors.InternalError(err)
	}

	// Expired codes are indistinguishable from wrong ones.
	if !pending.IsValid() {
		return nil, apperrors.ErrInvalidVerificationCode
	}

	user := &models.User{
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		IsActive:     true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		return s.userRepo.DeletePendingUser(tx, pending.ID)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyRegistered
		}
		return nil, apperrors.InternalError(err)
	}

	accessToken, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken: accessToken,
		User:        buildUserDTO(user),
	}, nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken: accessToken,
		User:        buildUserDTO(user),
	}, nil
}

func (s *AuthServiceImpl) RequestPasswordReset(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrEmailNotFound
		}
		return apperrors.InternalError(err)
	}

	token := auth.RandomString(resetTokenLength)

	// One active reset token per user: a new request invalidates the old link.
	if _, err := s.tokenRepo.Upsert(db, user.ID, models.TokenTypePasswordReset, token); err != nil {
		return apperrors.InternalError(err)
	}

	s.sendPasswordResetEmail(user.Email, token)

	return nil
}

func (s *AuthServiceImpl) VerifyResetLink(db *gorm.DB, emailAddr, token string) error {
	stored, err := s.tokenRepo.FindByEmailAndToken(db, normalizeEmail(emailAddr), token, models.TokenTypePasswordReset)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return apperrors.ErrInvalidResetLink
		}
		return apperrors.InternalError(err)
	}

	if !stored.IsValid() {
		return apperrors.ErrInvalidResetLink
	}

	return nil
}

func (s *AuthServiceImpl) SetNewPassword(db *gorm.DB, req *dto.SetNewPasswordRequest) error {
	// Mismatched confirmation fails before the token is checked, so the
	// link stays usable for another attempt.
	if req.NewPassword != req.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}

	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ValidationError(err.Error())
	}

	stored, err := s.tokenRepo.FindByEmailAndToken(db, normalizeEmail(req.Email), req.Token, models.TokenTypePasswordReset)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return apperrors.ErrInvalidResetLink
		}
		return apperrors.InternalError(err)
	}

	if !stored.IsValid() {
		return apperrors.ErrInvalidResetLink
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	// Reset tokens are single use.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdatePassword(tx, stored.UserID, hashedPassword); err != nil {
			return err
		}
		return s.tokenRepo.Delete(tx, stored.ID)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

// --- Helper functions ---

// normalizeEmail lowercases the address so lookups and the unique index
// never split one account across case variants.
func normalizeEmail(emailAddr string) string {
	return strings.ToLower(strings.TrimSpace(emailAddr))
}

func buildUserDTO(user *models.User) dto.UserDTO {
	return dto.UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		IsStaff:   user.IsStaff,
		CreatedAt: user.CreatedAt,
	}
}

func (s *AuthServiceImpl) sendVerificationEmail(emailAddr, code string) {
	if s.emailProvider == nil {
		return
	}

	go func() {
		data := email.TemplateData{
			"Email": emailAddr,
			"Code":  code,
		}
		if err := s.emailProvider.SendTemplate([]string{emailAddr}, "Verify your account", "email_verification", data); err != nil {
			logger.WithError(err).Warn("failed to send verification email", "email", emailAddr)
		}
	}()
}

func (s *AuthServiceImpl) sendPasswordResetEmail(emailAddr, token string) {
	if s.emailProvider == nil {
		return
	}

	go func() {
		cfg := config.GetConfig()
		data := email.TemplateData{
			"ResetURL": fmt.Sprintf("%s/set-new-password?email=%s&token=%s", cfg.Email.BaseURL, emailAddr, token),
		}
		if err := s.emailProvider.SendTemplate([]string{emailAddr}, "Reset your password", "password_reset", data); err != nil {
			logger.WithError(err).Warn("failed to send password reset email", "email", emailAddr)
		}
	}()
}
