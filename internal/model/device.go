package model

import "time"

// DeviceRegistration push token of a mobile install (device_registrations)
type DeviceRegistration struct {
	RegistrationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"registration_id"`
	UserID         string    `gorm:"type:uuid;not null;uniqueIndex:uq_device_token"   json:"user_id"`
	Platform       string    `gorm:"type:varchar(20);not null"                        json:"platform"` // ios | android
	Token          string    `gorm:"type:varchar(500);not null;uniqueIndex:uq_device_token" json:"token"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"               json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"               json:"updated_at"`
}

func (DeviceRegistration) TableName() string { return "device_registrations" }
