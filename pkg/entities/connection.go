package entities

import "time"

// PlatformRegistration is stored under platformRegistration_<platformName>.
type PlatformRegistration struct {
	PlatformName   string    `json:"platformName"`
	AccountAddress string    `json:"accountAddress"`
	RegisteredAt   time.Time `json:"registeredAt"`
	IsRegistered   bool      `json:"isRegistered"`
}

// PlatformConnection is stored under platformConnection_<platformName>.
type PlatformConnection struct {
	PlatformName   string    `json:"platformName"`
	AccountAddress string    `json:"accountAddress"`
	ConnectedAt    time.Time `json:"connectedAt"`
	IsConnected    bool      `json:"isConnected"`
	Status         string    `json:"status"`
}

// ConnectionState is the per-platform position in the select/connect flow.
type ConnectionState string

const (
	StateUnselected ConnectionState = "unselected"
	StateSelected   ConnectionState = "selected"
	StateConnecting ConnectionState = "connecting"
	StateConnected  ConnectionState = "connected"
)

// StatusRecord is one durable key-value entry. Values are JSON documents.
type StatusRecord struct {
	Key       string    `json:"key" gorm:"column:record_key;primaryKey;type:varchar(255)"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StatusRecord) TableName() string { return "status_records" }
