package repositories

import (
	"errors"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrPendingUserNotFound = errors.New("pending user not found")
)

type UserRepository interface {
	// User operations
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	EmailExists(db *gorm.DB, email string) (bool, error)
	Create(db *gorm.DB, user *models.User) error
	UpdatePassword(db *gorm.DB, userID, passwordHash string) error

	// PendingUser operations
	UpsertPendingUser(db *gorm.DB, email, passwordHash, code string) (*models.PendingUser, error)
	FindPendingByEmailAndCode(db *gorm.DB, email, code string) (*models.PendingUser, error)
	DeletePendingUser(db *gorm.DB, id string) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

// User operations

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) EmailExists(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return db.Create(user).Error
}

func (r *UserRepositoryImpl) UpdatePassword(db *gorm.DB, userID, passwordHash string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// PendingUser operations

// UpsertPendingUser replaces any existing pending registration for the
// email: new password hash, new verification code, creation time reset to
// now. The previous code becomes unusable.
func (r *UserRepositoryImpl) UpsertPendingUser(db *gorm.DB, email, passwordHash, code string) (*models.PendingUser, error) {
	var pending models.PendingUser
	err := db.Where("email = ?", email).First(&pending).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		pending = models.PendingUser{
			Email:            email,
			PasswordHash:     passwordHash,
			VerificationCode: code,
		}
		if err := db.Create(&pending).Error; err != nil {
			return nil, err
		}
		return &pending, nil
	}

	now := time.Now().UTC()
	result := db.Model(&pending).Updates(map[string]interface{}{
		"password_hash":     passwordHash,
		"verification_code": code,
		"created_at":        now,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	pending.PasswordHash = passwordHash
	pending.VerificationCode = code
	pending.CreatedAt = now
	return &pending, nil
}

func (r *UserRepositoryImpl) FindPendingByEmailAndCode(db *gorm.DB, email, code string) (*models.PendingUser, error) {
	var pending models.PendingUser
	err := db.Where("email = ? AND verification_code = ?", email, code).First(&pending).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPendingUserNotFound
		}
		return nil, err
	}
	return &pending, nil
}

func (r *UserRepositoryImpl) DeletePendingUser(db *gorm.DB, id string) error {
	return db.Delete(&models.PendingUser{}, "id = ?", id).Error
}
