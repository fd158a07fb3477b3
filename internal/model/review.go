package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HostelType is the kind of hostel a review is about.
type HostelType string

const (
	HostelBoys  HostelType = "Boys"
	HostelGirls HostelType = "Girls"
	HostelCoEd  HostelType = "Co-Ed"
)

// HostelTypes lists the accepted hostel types in display order.
var HostelTypes = []HostelType{HostelBoys, HostelGirls, HostelCoEd}

// Valid reports whether t is one of HostelTypes.
func (t HostelType) Valid() bool {
	switch t {
	case HostelBoys, HostelGirls, HostelCoEd:
		return true
	}
	return false
}

// MealType is the meal a review is about.
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnacks    MealType = "Snacks"
)

// MealTypes lists the accepted meal types in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnacks}

// Valid reports whether m is one of MealTypes.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnacks:
		return true
	}
	return false
}

// Review is one submitted food review. ID and CreatedAt are assigned by the
// store on creation; a Review is never updated afterwards.
type Review struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id"`
	ReviewerName   string     `gorm:"size:128;not null" json:"reviewer_name"`
	HostelName     string     `gorm:"size:256;not null;index" json:"hostel_name"`
	HostelType     HostelType `gorm:"size:16;not null" json:"hostel_type"`
	City           *string    `gorm:"size:128" json:"city"`
	MealType       MealType   `gorm:"size:16;not null" json:"meal_type"`
	DishName       *string    `gorm:"size:256" json:"dish_name"`
	OverallRating  int        `gorm:"not null;check:overall_rating >= 1 AND overall_rating <= 5" json:"overall_rating"`
	TasteRating    int        `gorm:"not null;check:taste_rating >= 1 AND taste_rating <= 5" json:"taste_rating"`
	HygieneRating  int        `gorm:"not null;check:hygiene_rating >= 1 AND hygiene_rating <= 5" json:"hygiene_rating"`
	QuantityRating int        `gorm:"not null;check:quantity_rating >= 1 AND quantity_rating <= 5" json:"quantity_rating"`
	ReviewText     *string    `gorm:"type:text" json:"review_text"`
	IsRecommended  bool       `gorm:"not null" json:"is_recommended"`
	CreatedAt      time.Time  `gorm:"not null;index" json:"created_at"`
}

// BeforeCreate assigns the record id.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
