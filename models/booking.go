package models

import "time"

const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingSeated    = "seated"
	BookingCompleted = "completed"
)

type Booking struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CustomerName string    `gorm:"type:varchar(255);not null;index" json:"customer_name"`
	Phone        string    `gorm:"type:varchar(50)" json:"phone"`
	Date         string    `gorm:"type:varchar(10);not null;index" json:"date"` // YYYY-MM-DD
	Time         string    `gorm:"type:varchar(5);not null" json:"time"`        // HH:MM
	Pax          int       `gorm:"not null;default:1" json:"pax"`
	Status       string    `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	Notes        string    `gorm:"type:text" json:"notes,omitempty"`
	TableID      *uint     `gorm:"index" json:"table_id,omitempty"`
	Table        *Table    `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"table,omitempty"`
	PhotoPath    string    `gorm:"type:varchar(255)" json:"photo_path,omitempty"`
	PhotoMime    string    `gorm:"type:varchar(100)" json:"photo_mime,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
