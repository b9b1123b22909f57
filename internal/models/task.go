package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo TaskStatus = "TODO"
	TaskStatusDone TaskStatus = "DONE"
)

// Task is a to-do item owned by a single user. CreatedAt and UpdatedAt are
// stamped by the service layer from an injected clock, so gorm's automatic
// timestamp tracking is disabled.
type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'TODO'" json:"status"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime:false" json:"updated_at"`
	AuthorID    uint64     `gorm:"not null;index" json:"author_id"`

	// Relations
	Author *User `gorm:"foreignKey:AuthorID" json:"-"`
}
