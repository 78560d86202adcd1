package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	UUID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4()"`
	Username  string    `gorm:"uniqueIndex"`
	Email     string    `gorm:"uniqueIndex"`
	FirstName string
	LastName  string
	IsAdmin   bool
}

// Follow is a directed edge: UserID follows AuthorID. Edge rows are created
// and destroyed directly by user action, so there is no soft delete here.
type Follow struct {
	ID       uint `gorm:"primarykey"`
	UserID   uint `gorm:"uniqueIndex:idx_follow_unique"`
	AuthorID uint `gorm:"uniqueIndex:idx_follow_unique"`

	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
