package models

// RoleType is the authorization role of a user.
type RoleType string

const (
	RoleAdmin RoleType = "ADMIN"
	RoleUser  RoleType = "USER"
)

// User is a registered account. Password always holds the bcrypt hash, never
// the raw value; API responses go through DTOs, the json tags here only feed
// the cache codec.
type User struct {
	ID       uint64   `gorm:"primarykey" json:"id"`
	Username string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Password string   `gorm:"type:varchar(255);not null" json:"password"`
	Email    string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role     RoleType `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`

	// Relations. Task is the owning side, this list is derived.
	Tasks []Task `gorm:"foreignKey:AuthorID" json:"tasks,omitempty"`
}
