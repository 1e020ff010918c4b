package dtos

import "github.com/armii/platform-admin/pkg/entities"

type SelectAccountDTO struct {
	PlatformName   string `json:"platform_name" binding:"required,notblank"`
	AccountAddress string `json:"account_address" binding:"required,notblank"`
}

type ExtractDTO struct {
	PlatformName string `json:"platform_name" binding:"required,notblank"`
}

type ConnectionStatusDTO struct {
	PlatformName     string                   `json:"platform_name"`
	State            entities.ConnectionState `json:"state"`
	IsRegistered     bool                     `json:"is_registered"`
	IsConnecting     bool                     `json:"is_connecting"`
	IsConnected      bool                     `json:"is_connected"`
	SelectedAccount  string                   `json:"selected_account,omitempty"`
	ConnectedAccount string                   `json:"connected_account,omitempty"`
}
