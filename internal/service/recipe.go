package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipeshare/backend/internal/models"
	"github.com/recipeshare/backend/internal/types"
)

// listQueryTimeout bounds the listing query; exceeding it surfaces as
// ErrUnavailable so clients retry instead of seeing a server error.
const listQueryTimeout = 5 * time.Second

const featuredLimit = 6

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// List runs the filtered, sorted, paginated recipe listing.
func (s *RecipeService) List(ctx context.Context, params ListRecipesParams, viewer *types.TokenClaims) ([]models.Recipe, types.Pagination, error) {
	ctx, cancel := context.WithTimeout(ctx, listQueryTimeout)
	defer cancel()

	base := applyRecipeFilters(s.db.WithContext(ctx).Model(&models.Recipe{}), params, viewer)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, types.Pagination{}, s.classify(err)
	}

	skip := (params.Page - 1) * params.Limit
	var recipes []models.Recipe
	err := base.Session(&gorm.Session{}).
		Order(sortColumns[params.SortBy]).
		Offset(skip).
		Limit(params.Limit).
		Preload("Author").
		Find(&recipes).Error
	if err != nil {
		return nil, types.Pagination{}, s.classify(err)
	}

	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	pagination := types.Pagination{
		CurrentPage:  params.Page,
		TotalPages:   totalPages,
		TotalRecipes: total,
		HasNext:      int64(skip+len(recipes)) < total,
		HasPrev:      params.Page > 1,
	}

	return recipes, pagination, nil
}

// Featured returns the top-rated public featured recipes.
func (s *RecipeService) Featured(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("is_public = ? AND is_featured = ?", true, true).
		Order("average_rating DESC").
		Limit(featuredLimit).
		Preload("Author").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// SetFeatured marks or unmarks a recipe for the featured shelf. The
// caller is responsible for authorization; the handler gates this
// behind the admin middleware.
func (s *RecipeService) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	recipe.IsFeatured = featured
	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return nil, err
	}

	return s.reload(ctx, recipe.ID)
}

// Get retrieves a recipe, enforcing visibility: private recipes are
// readable only by their author or an admin.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID, viewer *types.TokenClaims) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Preload("Author").First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !recipe.IsPublic && !canModify(&recipe, viewer) {
		return nil, ErrForbidden
	}

	return &recipe, nil
}

// Create persists a new recipe for the author.
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, req types.CreateRecipeRequest) (*models.Recipe, error) {
	recipe := models.Recipe{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		AuthorID:     authorID,
		ImageURL:     req.ImageURL,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		Cuisine:      req.Cuisine,
		Category:     req.Category,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Tags:         req.Tags,
		IsPublic:     true,
	}
	if recipe.Servings == 0 {
		recipe.Servings = 1
	}
	if req.IsPublic != nil {
		recipe.IsPublic = *req.IsPublic
	}
	if req.IsFeatured != nil {
		recipe.IsFeatured = *req.IsFeatured
	}

	recipe.RecalculateDerived()
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}

	return s.reload(ctx, recipe.ID)
}

// Update applies a partial update. Only the author or an admin may
// update; the check is identical to Delete's.
func (s *RecipeService) Update(ctx context.Context, id uuid.UUID, actor *types.TokenClaims, req types.UpdateRecipeRequest) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !canModify(&recipe, actor) {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.ImageURL != nil {
		recipe.ImageURL = *req.ImageURL
	}
	if req.PrepTime != nil {
		recipe.PrepTime = *req.PrepTime
	}
	if req.CookTime != nil {
		recipe.CookTime = *req.CookTime
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}
	if req.Difficulty != nil {
		recipe.Difficulty = *req.Difficulty
	}
	if req.Cuisine != nil {
		recipe.Cuisine = *req.Cuisine
	}
	if req.Category != nil {
		recipe.Category = *req.Category
	}
	if req.Ingredients != nil {
		recipe.Ingredients = *req.Ingredients
	}
	if req.Instructions != nil {
		recipe.Instructions = *req.Instructions
	}
	if req.Tags != nil {
		recipe.Tags = *req.Tags
	}
	if req.IsPublic != nil {
		recipe.IsPublic = *req.IsPublic
	}
	if req.IsFeatured != nil {
		recipe.IsFeatured = *req.IsFeatured
	}

	recipe.RecalculateDerived()
	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return nil, err
	}

	return s.reload(ctx, recipe.ID)
}

// Delete removes a recipe. Author-or-admin only. Favorites pointing at
// the recipe are cleaned up; the author's recipe list is derived from
// author_id so it needs no bookkeeping.
func (s *RecipeService) Delete(ctx context.Context, id uuid.UUID, actor *types.TokenClaims) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !canModify(&recipe, actor) {
		return ErrForbidden
	}

	if err := s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("recipe_id = ?", id).Delete(&models.UserFavorite{}).Error
}

// AddReview records a review, replacing any earlier one by the same
// user, then recalculates the derived rating fields and persists.
func (s *RecipeService) AddReview(ctx context.Context, recipeID, userID uuid.UUID, rating int, comment string) (*models.Recipe, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if utf8.RuneCountInString(comment) > 500 {
		return nil, ErrCommentTooLong
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	recipe.SetReview(userID, rating, comment)
	recipe.RecalculateDerived()
	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return nil, err
	}

	return s.reload(ctx, recipe.ID)
}

// ToggleLike flips the caller's membership in the recipe's likes set.
// Nothing but the likes array and its materialized count changes.
func (s *RecipeService) ToggleLike(ctx context.Context, recipeID, userID uuid.UUID) (*models.Recipe, bool, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	liked := recipe.ToggleLike(userID)
	recipe.RecalculateDerived()
	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return nil, false, err
	}

	return &recipe, liked, nil
}

// ByAuthor lists an author's recipes newest-first. Private recipes are
// included only when the author themselves is asking.
func (s *RecipeService) ByAuthor(ctx context.Context, authorID uuid.UUID, includePrivate bool) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Where("author_id = ?", authorID)
	if !includePrivate {
		query = query.Where("is_public = ?", true)
	}

	var recipes []models.Recipe
	if err := query.Order("created_at DESC").Preload("Author").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *RecipeService) reload(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Preload("Author").First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeService) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrUnavailable
	}
	return err
}

func canModify(recipe *models.Recipe, actor *types.TokenClaims) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin || recipe.AuthorID == actor.UserID
}
