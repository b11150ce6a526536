package models

import (
	"time"
)

type User struct {
	ID        uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string          `json:"name" gorm:"type:text;not null"`
	LastName  string          `json:"lastName" gorm:"type:text"`
	Email     string          `json:"email" gorm:"type:text;uniqueIndex;not null"`
	Password  string          `json:"-" gorm:"type:text;not null"`
	PublicKey string          `json:"publicKey" gorm:"type:text;not null"`
	SecretKey string          `json:"-" gorm:"type:text;not null"`
	Role      string          `json:"role" gorm:"type:text;not null;default:'user'"`
	Wallets   []WalletAccount `json:"wallets" gorm:"constraint:OnDelete:CASCADE;"`
	Contacts  []Contact       `json:"contacts" gorm:"constraint:OnDelete:CASCADE;"`
	CDate     time.Time       `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type WalletAccount struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint      `json:"userId" gorm:"index:wallet_user_key,unique"`
	PublicKey string    `json:"publicKey" gorm:"type:text;index:wallet_user_key,unique"`
	SecretKey string    `json:"-" gorm:"type:text;not null"`
	CDate     time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Contact struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint      `json:"userId" gorm:"index:contact_user_key,unique"`
	Alias     string    `json:"alias" gorm:"type:text;index:contact_user_key,unique"`
	PublicKey string    `json:"publicKey" gorm:"type:text;not null"`
	CDate     time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
