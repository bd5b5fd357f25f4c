package model

import "time"

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

type AdminModel struct {
	AdminID           string    `gorm:"column:admin_id;type:uuid;primaryKey" json:"admin_id" bson:"_id"`
	AdminName         string    `gorm:"column:admin_name;type:varchar(255);not null" json:"admin_name" bson:"admin_name"`
	AdminEmail        string    `gorm:"column:admin_email;type:varchar(255);not null;uniqueIndex" json:"admin_email" bson:"admin_email"`
	AdminRole         string    `gorm:"column:admin_role;type:varchar(20);not null;default:'admin'" json:"admin_role" bson:"admin_role"`
	AdminPasswordHash string    `gorm:"column:admin_password_hash;type:text;not null" json:"-" bson:"admin_password_hash"`
	AdminIsActive     bool      `gorm:"column:admin_is_active;not null" json:"admin_is_active" bson:"admin_is_active"`
	AdminCreatedAt    time.Time `gorm:"column:admin_created_at;type:timestamptz;not null" json:"admin_created_at" bson:"admin_created_at"`
	AdminUpdatedAt    time.Time `gorm:"column:admin_updated_at;type:timestamptz;not null" json:"admin_updated_at" bson:"admin_updated_at"`
}

func (AdminModel) TableName() string {
	return "admins"
}
