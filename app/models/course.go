package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is a paid course created by an admin.
type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	ImageURL    string             `bson:"imageUrl" json:"imageUrl"`
	CreatorID   primitive.ObjectID `bson:"creatorId" json:"creatorId"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CoursePatch holds the course fields an update may change.
type CoursePatch struct {
	Title       *string
	Description *string
	Price       *float64
	ImageURL    *string
}

// Empty reports whether the patch changes nothing.
func (p CoursePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil && p.ImageURL == nil
}

// Apply copies the set fields of p onto c.
func (p CoursePatch) Apply(c *Course) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Price != nil {
		c.Price = *p.Price
	}
	if p.ImageURL != nil {
		c.ImageURL = *p.ImageURL
	}
}

// Purchase records that a user bought a course. One per (user, course).
type Purchase struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	CourseID  primitive.ObjectID `bson:"courseId" json:"courseId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// EarningsLine is one course's contribution to an admin's earnings.
type EarningsLine struct {
	CourseID  primitive.ObjectID `json:"courseId"`
	Title     string             `json:"title"`
	Price     float64            `json:"price"`
	Purchases int64              `json:"purchases"`
	Revenue   float64            `json:"revenue"`
}

// EarningsReport is the aggregate for one admin.
type EarningsReport struct {
	AdminID primitive.ObjectID `json:"adminId"`
	Total   float64            `json:"totalEarnings"`
	Courses []EarningsLine     `json:"courses"`
}
