package domain

import (
	"time"
)

type Role string

const (
	RoleResident Role = "resident"
	RoleLeader   Role = "leader"
	RoleOfficer  Role = "officer"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Role         Role      `json:"role"`
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
