package models

import "time"

// ServiceDurations are the bookable durations, in minutes.
var ServiceDurations = []int{15, 30, 45, 60}

// ValidServiceDuration reports whether d is one of the fixed durations.
func ValidServiceDuration(d int) bool {
	for _, v := range ServiceDurations {
		if d == v {
			return true
		}
	}
	return false
}

// ServiceImage holds an externally hosted image reference.
type ServiceImage struct {
	URL      string `bson:"url,omitempty" json:"url,omitempty"`
	PublicID string `bson:"public_id,omitempty" json:"publicId,omitempty"`
}

// Service is a catalog entry. Its duration determines a booking's end time.
type Service struct {
	ID          string       `bson:"id" json:"id"`
	Name        string       `bson:"name" json:"name"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64      `bson:"price" json:"price"`
	Duration    int          `bson:"duration" json:"duration"` // minutes
	Image       ServiceImage `bson:"image,omitempty" json:"image,omitzero"`
	IsActive    bool         `bson:"is_active" json:"isActive"`
	DeletedAt   *time.Time   `bson:"deleted_at" json:"deletedAt,omitempty"`
	CreatedAt   time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time    `bson:"updated_at" json:"updatedAt"`
}

// CreateServiceRequest is the payload for adding a catalog entry.
type CreateServiceRequest struct {
	Name        string       `json:"name" binding:"required"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Duration    int          `json:"duration" binding:"required"`
	Image       ServiceImage `json:"image"`
}

// UpdateServiceRequest carries the mutable catalog fields; nil means keep.
type UpdateServiceRequest struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	Price       *float64      `json:"price"`
	Duration    *int          `json:"duration"`
	Image       *ServiceImage `json:"image"`
	IsActive    *bool         `json:"isActive"`
}
