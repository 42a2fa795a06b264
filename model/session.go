package model

import "time"

// Session is a login audit record. Requests authenticate with bearer tokens;
// sessions only track which devices have signed in and are swept once expired.
type Session struct {
	SessionID  string    `bson:"session_id" json:"session_id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	DeviceInfo string    `bson:"device_info" json:"device_info"`
	IPAddress  string    `bson:"ip_address" json:"ip_address"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt  time.Time `bson:"expires_at" json:"expires_at"`
}
