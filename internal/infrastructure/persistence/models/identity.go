package models

import (
	"github.com/rentms/backend/internal/domain/identity"
	"github.com/shopspring/decimal"
)

// UserModel is the persistence model for users (admins and tenants)
type UserModel struct {
	BaseModel
	Name         string          `gorm:"type:varchar(255);not null"`
	Email        string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone        string          `gorm:"type:varchar(50)"`
	PasswordHash string          `gorm:"type:varchar(255);not null"`
	Role         string          `gorm:"type:varchar(20);not null;index"`
	Unit         string          `gorm:"type:varchar(50)"`
	BaseRent     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IsActive     bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		Role:         identity.Role(m.Role),
		Unit:         m.Unit,
		BaseRent:     m.BaseRent,
		IsActive:     m.IsActive,
	}
}

// UserModelFromDomain converts domain User to UserModel
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Role:         u.Role.String(),
		Unit:         u.Unit,
		BaseRent:     u.BaseRent,
		IsActive:     u.IsActive,
	}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}
