package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipeshare/backend/internal/models"
	"github.com/recipeshare/backend/internal/types"
)

const (
	userSearchLimit = 10
	topChefsLimit   = 10
)

// Profile is a user together with their public recipes and favorites.
type Profile struct {
	User          models.User     `json:"user"`
	Recipes       []models.Recipe `json:"recipes"`
	Favorites     []models.Recipe `json:"favorites"`
	FollowerCount int64           `json:"follower_count"`
	FollowCount   int64           `json:"follow_count"`
}

// UserService handles profiles, favorites and the follow graph.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ProfileByUsername assembles the public profile page data.
func (s *UserService) ProfileByUsername(ctx context.Context, username string) (*Profile, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("author_id = ? AND is_public = ?", user.ID, true).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	favorites, err := s.Favorites(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	var followers, following int64
	if err := s.db.WithContext(ctx).Model(&models.UserFollow{}).Where("followee_id = ?", user.ID).Count(&followers).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.UserFollow{}).Where("follower_id = ?", user.ID).Count(&following).Error; err != nil {
		return nil, err
	}

	return &Profile{
		User:          user,
		Recipes:       recipes,
		Favorites:     favorites,
		FollowerCount: followers,
		FollowCount:   following,
	}, nil
}

// ToggleFavorite flips membership of the recipe in the user's
// favorites set and reports the resulting state. Independent of likes.
func (s *UserService) ToggleFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	var fav models.UserFavorite
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&fav).Error
	switch {
	case err == nil:
		if err := s.db.WithContext(ctx).Delete(&fav).Error; err != nil {
			return false, err
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		fav = models.UserFavorite{
			ID:       uuid.New(),
			UserID:   userID,
			RecipeID: recipeID,
		}
		if err := s.db.WithContext(ctx).Create(&fav).Error; err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// Favorites lists the recipes a user has favorited.
func (s *UserService) Favorites(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN user_favorites ON user_favorites.recipe_id = recipes.id").
		Where("user_favorites.user_id = ?", userID).
		Order("user_favorites.created_at DESC").
		Preload("Author").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// ToggleFollow flips the follower→followee edge and reports whether
// the caller follows the target afterwards.
func (s *UserService) ToggleFollow(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	if followerID == followeeID {
		return false, ErrSelfFollow
	}

	var target models.User
	if err := s.db.WithContext(ctx).First(&target, "id = ?", followeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	var follow models.UserFollow
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(&follow).Error
	switch {
	case err == nil:
		if err := s.db.WithContext(ctx).Delete(&follow).Error; err != nil {
			return false, err
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		follow = models.UserFollow{
			ID:         uuid.New(),
			FollowerID: followerID,
			FolloweeID: followeeID,
		}
		if err := s.db.WithContext(ctx).Create(&follow).Error; err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// Search finds users by username or name substring, capped at ten.
func (s *UserService) Search(ctx context.Context, query string) ([]models.User, error) {
	like := "%" + query + "%"
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("username LIKE ? OR first_name LIKE ? OR last_name LIKE ?", like, like, like).
		Limit(userSearchLimit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// TopChefs returns the ten users with the most recipes. A join with a
// grouped count replaces the original's aggregation pipeline.
func (s *UserService) TopChefs(ctx context.Context) ([]types.TopChef, error) {
	var chefs []types.TopChef
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.id, users.username, users.first_name, users.last_name, users.avatar_url, users.bio, COUNT(recipes.id) AS recipe_count").
		Joins("JOIN recipes ON recipes.author_id = users.id").
		Group("users.id, users.username, users.first_name, users.last_name, users.avatar_url, users.bio").
		Order("recipe_count DESC").
		Limit(topChefsLimit).
		Scan(&chefs).Error
	if err != nil {
		return nil, err
	}
	return chefs, nil
}
