package domain

import "time"

// Carrier is a transport company dictionary entry
type Carrier struct {
	ID        string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	IsActive  bool      `bson:"isActive" json:"isActive"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// VehicleType is a vehicle type dictionary entry
type VehicleType struct {
	ID           string  `bson:"_id" json:"id"`
	Title        string  `bson:"title" json:"title"`
	BodyTypeID   *string `bson:"bodyTypeId,omitempty" json:"bodyTypeId,omitempty"`
	Tonnage      float64 `bson:"tonnage,omitempty" json:"tonnage,omitempty"`
	PalletsCount int     `bson:"palletsCount,omitempty" json:"palletsCount,omitempty"`
	IsActive     bool    `bson:"isActive" json:"isActive"`
}

// BodyType is a vehicle body type dictionary entry
type BodyType struct {
	ID       string `bson:"_id" json:"id"`
	Title    string `bson:"title" json:"title"`
	IsActive bool   `bson:"isActive" json:"isActive"`
}

// Warehouse is a shipping/delivery warehouse dictionary entry
type Warehouse struct {
	ID       string `bson:"_id" json:"id"`
	Title    string `bson:"title" json:"title"`
	Address  string `bson:"address,omitempty" json:"address,omitempty"`
	City     string `bson:"city,omitempty" json:"city,omitempty"`
	Region   string `bson:"region,omitempty" json:"region,omitempty"`
	IsActive bool   `bson:"isActive" json:"isActive"`
}

// CarrierRequestDatesStat is one statistics row tracking when a carrier
// request for a shipping was sent, confirmed or rejected.
type CarrierRequestDatesStat struct {
	ID          string     `bson:"_id" json:"id"`
	ShippingID  string     `bson:"shippingId" json:"shippingId"`
	CarrierID   *string    `bson:"carrierId,omitempty" json:"carrierId,omitempty"`
	SentAt      *time.Time `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	ConfirmedAt *time.Time `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
	RejectedAt  *time.Time `bson:"rejectedAt,omitempty" json:"rejectedAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
}
