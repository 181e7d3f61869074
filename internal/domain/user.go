package domain

// User Model
type User struct {
	ID           uint   `gorm:"primaryKey"`                    // Primary key
	Username     string `gorm:"uniqueIndex;not null"`          // Unique username
	PasswordHash string `gorm:"column:password_hash;not null"` // Bcrypt hash of the password
}
