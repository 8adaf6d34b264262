package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipeshare/backend/internal/types"
)

func TestToggleFavorite(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	recipes := NewRecipeService(db)
	author := createUser(t, db, "author")
	fan := createUser(t, db, "fan")
	recipe := createRecipe(t, recipes, author.ID, nil)

	ctx := context.Background()

	isFavorite, err := users.ToggleFavorite(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, isFavorite)

	favorites, err := users.Favorites(ctx, fan.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, recipe.ID, favorites[0].ID)

	isFavorite, err = users.ToggleFavorite(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, isFavorite)

	favorites, err = users.Favorites(ctx, fan.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	_, err = users.ToggleFavorite(ctx, fan.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleFollow(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	ctx := context.Background()

	following, err := users.ToggleFollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = users.ToggleFollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	_, err = users.ToggleFollow(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfFollow)

	_, err = users.ToggleFollow(ctx, alice.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileByUsername(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	recipes := NewRecipeService(db)
	chef := createUser(t, db, "chef")
	follower := createUser(t, db, "follower")

	isPublic := false
	createRecipe(t, recipes, chef.ID, nil)
	createRecipe(t, recipes, chef.ID, func(req *types.CreateRecipeRequest) {
		req.Title = "Draft"
		req.IsPublic = &isPublic
	})

	ctx := context.Background()

	_, err := users.ToggleFollow(ctx, follower.ID, chef.ID)
	require.NoError(t, err)
	_, err = users.ToggleFollow(ctx, chef.ID, follower.ID)
	require.NoError(t, err)

	profile, err := users.ProfileByUsername(ctx, "chef")
	require.NoError(t, err)
	assert.Equal(t, chef.ID, profile.User.ID)
	assert.Len(t, profile.Recipes, 1, "profiles expose public recipes only")
	assert.Equal(t, int64(1), profile.FollowerCount)
	assert.Equal(t, int64(1), profile.FollowCount)

	_, err = users.ProfileByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchUsers(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	for i := 0; i < 12; i++ {
		createUser(t, db, fmt.Sprintf("baker%02d", i))
	}
	createUser(t, db, "unrelated")

	ctx := context.Background()

	found, err := users.Search(ctx, "baker")
	require.NoError(t, err)
	assert.Len(t, found, 10, "search results are capped at ten")

	found, err = users.Search(ctx, "unrel")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "unrelated", found[0].Username)
}

func TestTopChefs(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	recipes := NewRecipeService(db)
	prolific := createUser(t, db, "prolific")
	casual := createUser(t, db, "casual")
	createUser(t, db, "lurker")

	for i := 0; i < 3; i++ {
		createRecipe(t, recipes, prolific.ID, nil)
	}
	createRecipe(t, recipes, casual.ID, nil)

	chefs, err := users.TopChefs(context.Background())
	require.NoError(t, err)
	require.Len(t, chefs, 2, "users without recipes are not chefs")
	assert.Equal(t, "prolific", chefs[0].Username)
	assert.Equal(t, 3, chefs[0].RecipeCount)
	assert.Equal(t, "casual", chefs[1].Username)
	assert.Equal(t, 1, chefs[1].RecipeCount)
}
