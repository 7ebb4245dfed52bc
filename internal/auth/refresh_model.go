package auth

import "time"

// RefreshToken guarda só o hash do valor entregue no cookie. Tokens de uma
// mesma família nascem do mesmo login.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index"`
	IsAdmin   bool      `gorm:"not null;default:false"`
	FamilyID  string    `gorm:"size:36;index"`
	Hash      string    `gorm:"size:64;uniqueIndex"`
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}
