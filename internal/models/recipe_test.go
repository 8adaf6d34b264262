package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRecalculateDerived(t *testing.T) {
	r := &Recipe{}
	r.RecalculateDerived()
	assert.Equal(t, float64(0), r.AverageRating)
	assert.Equal(t, 0, r.TotalReviews)
	assert.Equal(t, 0, r.LikeCount)

	r.Reviews = ReviewList{
		{UserID: uuid.New(), Rating: 3},
		{UserID: uuid.New(), Rating: 5},
	}
	r.Likes = JSONBStringArray{uuid.NewString()}
	r.RecalculateDerived()
	assert.Equal(t, 4.0, r.AverageRating)
	assert.Equal(t, 2, r.TotalReviews)
	assert.Equal(t, 1, r.LikeCount)

	// Idempotent: a second pass changes nothing.
	r.RecalculateDerived()
	assert.Equal(t, 4.0, r.AverageRating)
	assert.Equal(t, 2, r.TotalReviews)
	assert.Equal(t, 1, r.LikeCount)
}

func TestSetReviewReplaces(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	r := &Recipe{}
	r.SetReview(alice, 4, "nice")
	r.SetReview(bob, 5, "")
	assert.Len(t, r.Reviews, 2)

	r.SetReview(alice, 2, "on reflection")
	assert.Len(t, r.Reviews, 2, "one review per user")

	var found bool
	for _, review := range r.Reviews {
		if review.UserID == alice {
			found = true
			assert.Equal(t, 2, review.Rating)
			assert.Equal(t, "on reflection", review.Comment)
		}
	}
	assert.True(t, found)
}

func TestToggleLike(t *testing.T) {
	user := uuid.New()
	r := &Recipe{}

	assert.True(t, r.ToggleLike(user))
	assert.True(t, r.LikedBy(user))
	assert.Len(t, r.Likes, 1)

	assert.False(t, r.ToggleLike(user))
	assert.False(t, r.LikedBy(user))
	assert.Empty(t, r.Likes)
}

func TestTotalTime(t *testing.T) {
	r := &Recipe{PrepTime: 15, CookTime: 30}
	assert.Equal(t, 45, r.TotalTime())
}

func TestCategoryAndDifficultyValidation(t *testing.T) {
	assert.True(t, IsValidCategory("Dinner"))
	assert.False(t, IsValidCategory("Brunch"))
	assert.True(t, IsValidDifficulty("Easy"))
	assert.False(t, IsValidDifficulty("easy"), "difficulty values are case-sensitive")
}
