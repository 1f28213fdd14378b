package dto

import "time"

// RegisterTableRequest creates a table login and its teams.
type RegisterTableRequest struct {
	Username  string   `json:"username" binding:"required,min=3,max=50"`
	Password  string   `json:"password" binding:"required,min=6"`
	TeamNames []string `json:"teamNames" binding:"omitempty,min=1,max=8,dive,required,max=50"`
}

// TableLoginRequest logs a table in.
type TableLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TeamLoginRequest logs a single team in with its 4-digit code.
type TeamLoginRequest struct {
	TeamName string `json:"teamName" binding:"required"`
	Code     string `json:"code" binding:"required,len=4,numeric"`
}

// AdminLoginRequest logs the game master in.
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TeamCredential is handed out once, at registration.
type TeamCredential struct {
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	Code     string `json:"code"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Role      string           `json:"role"`
	TableID   string           `json:"tableId,omitempty"`
	TeamID    string           `json:"teamId,omitempty"`
	Teams     []TeamCredential `json:"teams,omitempty"`
}
