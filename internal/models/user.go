package models

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleNone             UserRole = "none"
	RoleUser             UserRole = "user"
	RoleInventoryManager UserRole = "inventory_manager"
	RoleSupplier         UserRole = "supplier"
)

const DefaultProfilePicture = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_960_720.png"

// ParseRole: rol adını büyük/küçük harf ve ayraç farkı gözetmeden çözer
// ("inventoryManager", "inventory-manager" ve "inventory_manager" aynı rol).
func ParseRole(s string) (UserRole, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "", "_", "", " ", "").Replace(norm)

	switch norm {
	case "none", "":
		return RoleNone, true
	case "user":
		return RoleUser, true
	case "inventorymanager":
		return RoleInventoryManager, true
	case "supplier":
		return RoleSupplier, true
	}
	return RoleNone, false
}

type User struct {
	ID             uint     `gorm:"primaryKey"`
	Username       string   `gorm:"size:100;uniqueIndex;not null"`
	Email          string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash   string   `gorm:"size:255;not null"`
	ProfilePicture string   `gorm:"size:500"`
	IsAdmin        bool     `gorm:"not null;default:false"`
	Role           UserRole `gorm:"size:30;not null;default:user"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
