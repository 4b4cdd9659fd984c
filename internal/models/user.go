package models

// Operator is an API user allowed to upload datasets and read reports.
type Operator struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
