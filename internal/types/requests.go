package types

import "github.com/recipeshare/backend/internal/models"

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=30"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Bio       string `json:"bio" binding:"max=500"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateRecipeRequest is the body of POST /api/recipes. For multipart
// submissions it arrives as the JSON `data` part next to the image file.
type CreateRecipeRequest struct {
	Title        string               `json:"title" binding:"required,max=255"`
	Description  string               `json:"description" binding:"required"`
	ImageURL     string               `json:"image_url" binding:"omitempty,url"`
	PrepTime     int                  `json:"prep_time" binding:"gte=0"`
	CookTime     int                  `json:"cook_time" binding:"gte=0"`
	Servings     int                  `json:"servings" binding:"gte=0"`
	Difficulty   string               `json:"difficulty" binding:"required,oneof=Easy Medium Hard"`
	Cuisine      string               `json:"cuisine"`
	Category     string               `json:"category" binding:"required,oneof=Breakfast Lunch Dinner Dessert Snack Beverage Appetizer Soup Salad Bread Other"`
	Ingredients  []models.Ingredient  `json:"ingredients"`
	Instructions []models.Instruction `json:"instructions"`
	Tags         []string             `json:"tags"`
	IsPublic     *bool                `json:"is_public"`
	IsFeatured   *bool                `json:"is_featured"`
}

// UpdateRecipeRequest is the body of PUT /api/recipes/:id. All fields
// are optional; absent fields leave the stored value untouched.
type UpdateRecipeRequest struct {
	Title        *string               `json:"title" binding:"omitempty,min=1,max=255"`
	Description  *string               `json:"description" binding:"omitempty,min=1"`
	ImageURL     *string               `json:"image_url" binding:"omitempty,url"`
	PrepTime     *int                  `json:"prep_time" binding:"omitempty,gte=0"`
	CookTime     *int                  `json:"cook_time" binding:"omitempty,gte=0"`
	Servings     *int                  `json:"servings" binding:"omitempty,gte=0"`
	Difficulty   *string               `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	Cuisine      *string               `json:"cuisine"`
	Category     *string               `json:"category" binding:"omitempty,oneof=Breakfast Lunch Dinner Dessert Snack Beverage Appetizer Soup Salad Bread Other"`
	Ingredients  *[]models.Ingredient  `json:"ingredients"`
	Instructions *[]models.Instruction `json:"instructions"`
	Tags         *[]string             `json:"tags"`
	IsPublic     *bool                 `json:"is_public"`
	IsFeatured   *bool                 `json:"is_featured"`
}

// FeatureRecipeRequest is the body of PUT /api/recipes/:id/feature.
// The pointer distinguishes an explicit false from an absent field.
type FeatureRecipeRequest struct {
	IsFeatured *bool `json:"is_featured" binding:"required"`
}

// ReviewRequest is the body of POST /api/recipes/:id/reviews.
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=500"`
}
