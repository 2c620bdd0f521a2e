package models

import "time"

// Settings is the singleton site settings record edited from the admin panel
type Settings struct {
	MaintenanceMode    bool      `json:"maintenanceMode"`
	MaintenanceMessage string    `json:"maintenanceMessage"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
