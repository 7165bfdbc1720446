package models

// RoleType defines the role carried in an access token
type RoleType string

const (
	RoleAdmin RoleType = "ADMIN"
)
