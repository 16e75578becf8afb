package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email           string   `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Password        string   `gorm:"-:migration" json:"-"` // Temporary field for password handling
	PasswordHash    string   `gorm:"column:password_hash;not null" json:"-"`
	FullName        string   `gorm:"column:full_name" json:"fullName"`
	AvatarURL       string   `gorm:"column:avatar_url" json:"avatarUrl"`
	Bio             string   `gorm:"column:bio" json:"bio"`
	PersonalityTags []string `gorm:"column:personality_tags;serializer:json" json:"personalityTags"`
	FCMToken        string   `gorm:"column:fcm_token" json:"-"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
