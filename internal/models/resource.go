package models

import "time"

// Resource — объявление (ресурс), которым владелец делится с другими.
// OwnerID фиксируется при создании и больше не меняется.
type Resource struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description string
	CategoryID  int64
	StatusID    int64
	Price       *float64
	Images      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
