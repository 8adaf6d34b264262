package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Difficulty levels a recipe can declare.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// RecipeCategories is the fixed set of accepted recipe categories.
var RecipeCategories = []string{
	"Breakfast", "Lunch", "Dinner", "Dessert", "Snack",
	"Beverage", "Appetizer", "Soup", "Salad", "Bread", "Other",
}

// RecipeDifficulties is the fixed set of accepted difficulty values.
var RecipeDifficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// IsValidCategory reports whether c is an accepted category.
func IsValidCategory(c string) bool {
	for _, v := range RecipeCategories {
		if v == c {
			return true
		}
	}
	return false
}

// IsValidDifficulty reports whether d is an accepted difficulty.
func IsValidDifficulty(d string) bool {
	for _, v := range RecipeDifficulties {
		if v == d {
			return true
		}
	}
	return false
}

// Ingredient is one entry of a recipe's ingredient list.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// Instruction is one ordered step of a recipe.
type Instruction struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
}

// Review is a per-user rating with an optional comment. A user has at
// most one review per recipe; resubmitting replaces the old one.
type Review struct {
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	return scanJSONB(value, a, func() { *a = JSONBStringArray{} })
}

// IngredientList stores a recipe's ingredients as a JSONB array.
type IngredientList []Ingredient

func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *IngredientList) Scan(value interface{}) error {
	return scanJSONB(value, l, func() { *l = IngredientList{} })
}

// InstructionList stores a recipe's ordered steps as a JSONB array.
type InstructionList []Instruction

func (l InstructionList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *InstructionList) Scan(value interface{}) error {
	return scanJSONB(value, l, func() { *l = InstructionList{} })
}

// ReviewList stores a recipe's reviews as a JSONB array.
type ReviewList []Review

func (l ReviewList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *ReviewList) Scan(value interface{}) error {
	return scanJSONB(value, l, func() { *l = ReviewList{} })
}

func scanJSONB(value interface{}, dest interface{}, reset func()) error {
	if value == nil {
		reset()
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, dest)
}

// Recipe is the central document of the system. Ingredients, instructions,
// reviews, tags and likes are embedded JSONB arrays; average_rating,
// total_reviews and like_count are derived columns maintained by
// RecalculateDerived before every persistence.
type Recipe struct {
	ID            uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Title         string           `gorm:"size:255;not null" json:"title"`
	Description   string           `gorm:"type:text" json:"description"`
	AuthorID      uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"author_id"`
	Author        *User            `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ImageURL      string           `gorm:"size:255" json:"image_url"`
	PrepTime      int              `gorm:"not null;default:0" json:"prep_time"`
	CookTime      int              `gorm:"not null;default:0" json:"cook_time"`
	Servings      int              `gorm:"not null;default:1" json:"servings"`
	Difficulty    string           `gorm:"size:10;not null;default:'Medium'" json:"difficulty"`
	Cuisine       string           `gorm:"size:50" json:"cuisine"`
	Category      string           `gorm:"size:50;not null" json:"category"`
	Ingredients   IngredientList   `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions  InstructionList  `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Tags          JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Reviews       ReviewList       `gorm:"type:jsonb;not null;default:'[]'" json:"reviews"`
	AverageRating float64          `gorm:"not null;default:0" json:"average_rating"`
	TotalReviews  int              `gorm:"not null;default:0" json:"total_reviews"`
	Likes         JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"likes"`
	LikeCount     int              `gorm:"not null;default:0;index" json:"like_count"`
	IsPublic      bool             `gorm:"not null;default:true" json:"is_public"`
	IsFeatured    bool             `gorm:"not null;default:false" json:"is_featured"`
}

// TotalTime is prep plus cook time in minutes.
func (r *Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// RecalculateDerived recomputes average_rating, total_reviews and
// like_count from the embedded arrays. It is unconditional and
// idempotent; every write path calls it immediately before persisting.
func (r *Recipe) RecalculateDerived() {
	if len(r.Reviews) > 0 {
		total := 0
		for _, review := range r.Reviews {
			total += review.Rating
		}
		r.AverageRating = float64(total) / float64(len(r.Reviews))
		r.TotalReviews = len(r.Reviews)
	} else {
		r.AverageRating = 0
		r.TotalReviews = 0
	}
	r.LikeCount = len(r.Likes)
}

// SetReview replaces any existing review by the same user and appends
// the new one.
func (r *Recipe) SetReview(userID uuid.UUID, rating int, comment string) {
	kept := r.Reviews[:0]
	for _, review := range r.Reviews {
		if review.UserID != userID {
			kept = append(kept, review)
		}
	}
	r.Reviews = append(kept, Review{
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	})
}

// ToggleLike flips membership of userID in the likes set and reports
// whether the recipe is liked by that user afterwards.
func (r *Recipe) ToggleLike(userID uuid.UUID) bool {
	id := userID.String()
	for i, liker := range r.Likes {
		if liker == id {
			r.Likes = append(r.Likes[:i], r.Likes[i+1:]...)
			return false
		}
	}
	r.Likes = append(r.Likes, id)
	return true
}

// LikedBy reports whether userID is in the likes set.
func (r *Recipe) LikedBy(userID uuid.UUID) bool {
	id := userID.String()
	for _, liker := range r.Likes {
		if liker == id {
			return true
		}
	}
	return false
}
