package dto

import "time"

// CreateHolidayRequest payload.
type CreateHolidayRequest struct {
	Day    string `json:"day"`
	Name   string `json:"name"`
	Locale string `json:"locale"`
}

// HolidayResponse represents one calendar entry.
type HolidayResponse struct {
	ID     string    `json:"id"`
	Day    time.Time `json:"day"`
	Name   string    `json:"name"`
	Locale string    `json:"locale"`
}
