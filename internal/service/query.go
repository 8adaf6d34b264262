package service

import (
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/recipeshare/backend/internal/models"
	"github.com/recipeshare/backend/internal/types"
)

const (
	defaultPage  = 1
	defaultLimit = 12
	maxLimit     = 50
)

// sortColumns maps the public sortBy values onto ORDER BY clauses.
// "popular" sorts on the materialized like_count column with rating as
// the tie-break.
var sortColumns = map[string]string{
	"newest":  "created_at DESC",
	"oldest":  "created_at ASC",
	"rating":  "average_rating DESC",
	"time":    "prep_time ASC",
	"title":   "title ASC",
	"popular": "like_count DESC, average_rating DESC",
}

// ListRecipesParams is the validated filter/sort/pagination triple for
// a recipe listing.
type ListRecipesParams struct {
	Search     string
	Category   string
	Cuisine    string
	Difficulty string
	MaxTime    int
	MinRating  float64
	SortBy     string
	Page       int
	Limit      int
}

// ParseListRecipesParams translates raw query parameters into
// ListRecipesParams. Every malformed parameter is collected; a
// non-empty error list fails the whole request before any query runs.
func ParseListRecipesParams(values url.Values) (ListRecipesParams, types.ValidationErrors) {
	params := ListRecipesParams{
		SortBy: "newest",
		Page:   defaultPage,
		Limit:  defaultLimit,
	}
	var errs types.ValidationErrors

	params.Search = strings.TrimSpace(values.Get("search"))
	params.Cuisine = strings.TrimSpace(values.Get("cuisine"))

	if v := strings.TrimSpace(values.Get("category")); v != "" {
		if !models.IsValidCategory(v) {
			errs.Add("category", "invalid category")
		} else {
			params.Category = v
		}
	}

	if v := strings.TrimSpace(values.Get("difficulty")); v != "" {
		if !models.IsValidDifficulty(v) {
			errs.Add("difficulty", "difficulty must be Easy, Medium, or Hard")
		} else {
			params.Difficulty = v
		}
	}

	if v := values.Get("maxTime"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs.Add("maxTime", "must be a positive integer")
		} else {
			params.MaxTime = n
		}
	}

	if v := values.Get("minRating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 5 {
			errs.Add("minRating", "must be a number between 0 and 5")
		} else {
			params.MinRating = f
		}
	}

	if v := values.Get("sortBy"); v != "" {
		if _, ok := sortColumns[v]; !ok {
			errs.Add("sortBy", "unsupported sort")
		} else {
			params.SortBy = v
		}
	}

	if v := values.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs.Add("page", "must be an integer of at least 1")
		} else {
			params.Page = n
		}
	}

	if v := values.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxLimit {
			errs.Add("limit", "must be an integer between 1 and 50")
		} else {
			params.Limit = n
		}
	}

	return params, errs
}

// applyRecipeFilters attaches the WHERE clauses for params to query.
// The base filter restricts to public recipes; an authenticated viewer
// additionally sees their own private ones.
func applyRecipeFilters(query *gorm.DB, params ListRecipesParams, viewer *types.TokenClaims) *gorm.DB {
	if viewer != nil {
		query = query.Where("is_public = ? OR author_id = ?", true, viewer.UserID)
	} else {
		query = query.Where("is_public = ?", true)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Cuisine != "" {
		query = query.Where("LOWER(cuisine) LIKE ?", "%"+strings.ToLower(params.Cuisine)+"%")
	}
	if params.Difficulty != "" {
		query = query.Where("difficulty = ?", params.Difficulty)
	}
	if params.Search != "" {
		like := "%" + strings.ToLower(params.Search) + "%"
		if query.Dialector.Name() == "postgres" {
			query = query.Where(
				"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(ingredients::text) LIKE ?",
				like, like, like,
			)
		} else {
			query = query.Where(
				"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(ingredients) LIKE ?",
				like, like, like,
			)
		}
	}
	if params.MaxTime > 0 {
		// Filters on total time, not either field alone.
		query = query.Where("prep_time + cook_time <= ?", params.MaxTime)
	}
	if params.MinRating > 0 {
		query = query.Where("average_rating >= ?", params.MinRating)
	}

	return query
}
