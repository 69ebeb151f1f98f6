package models

import "time"

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"` // Firebase uid
	Email     string    `gorm:"unique;not null" json:"email"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
}
