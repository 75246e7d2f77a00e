package models

import "github.com/google/uuid"

// Team represents a cleaning team in the staff directory
type Team struct {
	BaseModel
	Name   string `json:"name" gorm:"size:100;not null" validate:"required"`
	Active bool   `json:"active" gorm:"default:true"`

	// Relationships
	Members []Member `json:"members,omitempty" gorm:"foreignKey:TeamID"`
}

// TableName returns the table name for Team
func (Team) TableName() string {
	return "teams"
}

// Member represents a staff member with a cleaning role
type Member struct {
	BaseModel
	TeamID   *uuid.UUID `json:"team_id,omitempty" gorm:"type:uuid;index"`
	FullName string     `json:"full_name" gorm:"size:100;not null" validate:"required"`
	Email    string     `json:"email" gorm:"size:100;uniqueIndex" validate:"omitempty,email"`
	Role     MemberRole `json:"role" gorm:"type:varchar(20);not null" validate:"required"`
	Active   bool       `json:"active" gorm:"default:true"`
}

// TableName returns the table name for Member
func (Member) TableName() string {
	return "members"
}
