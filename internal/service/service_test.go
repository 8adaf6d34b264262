package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipeshare/backend/internal/models"
	"github.com/recipeshare/backend/internal/testhelpers"
	"github.com/recipeshare/backend/internal/types"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testhelpers.SetupSQLite(t)
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "not-a-real-hash",
		FirstName:    "Test",
		LastName:     "User",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

func createAdmin(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := createUser(t, db, username)
	user.IsAdmin = true
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("failed to promote test user: %v", err)
	}
	return user
}

func claimsFor(user *models.User) *types.TokenClaims {
	return &types.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}
}

func createRecipe(t *testing.T, svc *RecipeService, authorID uuid.UUID, mutate func(*types.CreateRecipeRequest)) *models.Recipe {
	t.Helper()
	req := types.CreateRecipeRequest{
		Title:       "Test Recipe",
		Description: "A recipe used in tests",
		PrepTime:    10,
		CookTime:    20,
		Servings:    2,
		Difficulty:  models.DifficultyEasy,
		Category:    "Dinner",
		Ingredients: []models.Ingredient{
			{Name: "flour", Amount: "100", Unit: "g"},
		},
		Instructions: []models.Instruction{
			{Step: 1, Description: "Mix everything."},
		},
	}
	if mutate != nil {
		mutate(&req)
	}

	recipe, err := svc.Create(context.Background(), authorID, req)
	if err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return recipe
}
