package domain

import (
	"time"
)

// Account levels. Staff is the lowest privilege and the registration default.
const (
	LevelAdmin = "admin"
	LevelStaff = "staff"
)

type SysUser struct {
	ID        int64     `json:"id,string" form:"id"`
	Username  string    `gorm:"uniqueIndex;size:64" json:"username" form:"username"`
	Password  string    `json:"-" form:"-"`
	Level     string    `gorm:"size:16" json:"level" form:"level"`
	Status    string    `gorm:"size:16" json:"status" form:"status"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SysUser) TableName() string {
	return "sys_user"
}
