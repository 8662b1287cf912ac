package models

type UserStats struct {
	Total        int64 `json:"total"`
	Active       int64 `json:"active"`
	Inactive     int64 `json:"inactive"`
	Admins       int64 `json:"admins"`
	Clients      int64 `json:"clients"`
	NewThisMonth int64 `json:"newThisMonth"`
}
