// Package model holds the GORM persistence models.
package model

import "time"

// UserModel mirrors the 'users' table. The unique index on user_name is the
// authoritative guard against duplicate registration; the service-level
// existence check only short-circuits the common case.
type UserModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserName  string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string `gorm:"type:varchar(255);not null"`
	NickName  string `gorm:"type:varchar(255);not null"`
	Gender    int16  `gorm:"not null;default:3"`
	City      string `gorm:"type:varchar(255)"`
	Avatar    string `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
