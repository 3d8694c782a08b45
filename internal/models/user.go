package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// tokenLifespan is how long a verification code or reset token stays
// usable, measured from its creation time.
const tokenLifespan = 20 * 60 // seconds

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	IsActive     bool   `gorm:"default:true"`
	IsStaff      bool   `gorm:"default:false"`

	// Relations
	Tokens []Token `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// PendingUser holds a registration that has not been verified yet. A row
// is upserted per email; converting it to a User deletes it.
type PendingUser struct {
	BaseModel
	Email            string `gorm:"uniqueIndex;not null"`
	PasswordHash     string `gorm:"not null"`
	VerificationCode string `gorm:"uniqueIndex;not null"`
}

// IsValid reports whether the pending registration is still inside its
// 20-minute window.
func (p *PendingUser) IsValid() bool {
	return p.IsValidAt(time.Now().UTC())
}

// IsValidAt checks validity against an explicit instant. Elapsed time of
// exactly the lifespan is still valid; only strictly greater expires it.
func (p *PendingUser) IsValidAt(now time.Time) bool {
	timediff := now.Sub(p.CreatedAt).Seconds()
	return timediff <= tokenLifespan
}

// Token is a single-use credential attached to a user. One row per
// (user, type) is kept via upsert; reissuing replaces the token string
// and resets the creation time.
type Token struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"not null;index;uniqueIndex:idx_token_user_type"`
	Token     string    `gorm:"not null"`
	TokenType TokenType `gorm:"type:varchar(100);not null;uniqueIndex:idx_token_user_type"`
	CreatedAt time.Time

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns the UUID primary key. Token does not embed
// BaseModel because it has no updated_at column.
func (t *Token) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// IsValid reports whether the token is still inside its 20-minute window.
func (t *Token) IsValid() bool {
	return t.IsValidAt(time.Now().UTC())
}

// IsValidAt checks validity against an explicit instant, with the same
// inclusive boundary as PendingUser.
func (t *Token) IsValidAt(now time.Time) bool {
	timediff := now.Sub(t.CreatedAt).Seconds()
	return timediff <= tokenLifespan
}
