package entity

import "time"

// Warehouse representa una bodega física.
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	IsActive  bool
	CreatedAt time.Time
}
