package models

import "time"

type UserRole string

const (
	RoleRecruiter UserRole = "recruiter"
	RoleCandidate UserRole = "candidate"
)

type User struct {
	ID        string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Email     string     `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Name      string     `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Picture   string     `gorm:"column:picture;type:varchar(512)" json:"picture"`
	Role      UserRole   `gorm:"column:role;type:varchar(20);not null" json:"role"`
	GoogleID  string     `gorm:"column:google_id;type:varchar(255);index" json:"google_id"`
	IsActive  bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	LastLogin *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
}

func (User) TableName() string { return "users" }

// UserSession rows are bookkeeping for issued tokens. Auth decisions are made
// on the stateless bearer token; logout deletes these rows without revoking
// tokens clients still hold.
type UserSession struct {
	ID           string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserID       string    `gorm:"column:user_id;type:varchar(36);index;not null" json:"user_id"`
	SessionToken string    `gorm:"column:session_token;type:varchar(512);uniqueIndex;not null" json:"session_token"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (UserSession) TableName() string { return "user_sessions" }
