package models

import "gorm.io/gorm"

const (
	RoleSeeker   = "seeker"
	RoleEmployer = "employer"
	RoleAdmin    = "admin"
)

// @description User model
type User struct {
	gorm.Model
	Name         string `json:"name"`
	Email        string `json:"email" gorm:"unique"`
	Password     string `json:"-"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	UserNumber   string `json:"user_number" gorm:"unique"`
	Bio          string `json:"bio,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
	ProfilePic   string `json:"profile_pic,omitempty"`
	Verified     bool   `json:"verified" gorm:"default:false"`
}

func IsValidRole(role string) bool {
	switch role {
	case RoleSeeker, RoleEmployer, RoleAdmin:
		return true
	default:
		return false
	}
}
