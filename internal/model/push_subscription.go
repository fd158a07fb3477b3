package model

import "time"

// PushSubscription holds the information for a browser push subscription.
// An empty HostelName subscribes to new reviews for every hostel.
type PushSubscription struct {
	Endpoint   string    `gorm:"primaryKey"`
	P256DH     string    `gorm:"column:p256dh;not null"`
	Auth       string    `gorm:"not null"`
	HostelName string    `gorm:"size:256;index"`
	CreatedAt  time.Time `gorm:"not null"`
}
