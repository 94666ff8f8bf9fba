// Package domain defines core types and interfaces for user accounts
package domain

import "time"

// User is the account view handed to transports; never carries the hash
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	DarkMode  bool      `json:"dark_mode"`
	AIEnabled bool      `json:"ai_enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the result of a successful login
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}
