package api

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"github.com/recipeshare/backend/internal/middleware"
	"github.com/recipeshare/backend/internal/service"
	"github.com/recipeshare/backend/internal/types"
)

const maxImageBytes = 5 << 20

// RecipeHandler serves recipe CRUD, listing, reviews and toggles.
type RecipeHandler struct {
	recipes       *service.RecipeService
	users         *service.UserService
	images        *service.ImageService
	validator     middleware.TokenValidator
	createLimiter *middleware.RateLimiter
	modifyLimiter *middleware.RateLimiter
}

func NewRecipeHandler(recipes *service.RecipeService, users *service.UserService, images *service.ImageService, validator middleware.TokenValidator, createLimiter, modifyLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipes:       recipes,
		users:         users,
		images:        images,
		validator:     validator,
		createLimiter: createLimiter,
		modifyLimiter: modifyLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(h.validator), h.ListRecipes)
		recipes.GET("/search", middleware.OptionalAuthMiddleware(h.validator), h.SearchRecipes)
		recipes.GET("/featured", h.FeaturedRecipes)
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.validator), h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.validator), h.createLimiter.Middleware(), h.CreateRecipe)
		recipes.PUT("/:id", middleware.AuthMiddleware(h.validator), h.modifyLimiter.Middleware(), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.validator), h.DeleteRecipe)
		recipes.POST("/:id/reviews", middleware.AuthMiddleware(h.validator), h.AddReview)
		recipes.POST("/:id/like", middleware.AuthMiddleware(h.validator), h.ToggleLike)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.validator), h.ToggleFavorite)
		recipes.PUT("/:id/feature", middleware.AuthMiddleware(h.validator), middleware.AdminMiddleware(), h.SetFeatured)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	h.listRecipes(c, c.Request.URL.Query())
}

// SearchRecipes is the listing route under another name: the q
// parameter feeds the search filter and everything else is shared.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	values := c.Request.URL.Query()
	if q := strings.TrimSpace(values.Get("q")); q != "" {
		values.Set("search", q)
	}
	h.listRecipes(c, values)
}

func (h *RecipeHandler) listRecipes(c *gin.Context, values url.Values) {
	params, errs := service.ParseListRecipesParams(values)
	if len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	recipes, pagination, err := h.recipes.List(c.Request.Context(), params, middleware.GetClaims(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       recipes,
		"pagination": pagination,
	})
}

func (h *RecipeHandler) FeaturedRecipes(c *gin.Context) {
	recipes, err := h.recipes.Featured(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    recipes,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id, middleware.GetClaims(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    recipe,
	})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	claims := middleware.GetClaims(c)

	req, ok := h.bindRecipeBody(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Recipe created successfully",
		"data":    recipe,
	})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationErrors(c, types.FromBindingError(err))
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), id, middleware.GetClaims(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Recipe updated successfully",
		"data":    recipe,
	})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), id, middleware.GetClaims(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Recipe deleted successfully",
	})
}

func (h *RecipeHandler) AddReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req types.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationErrors(c, types.FromBindingError(err))
		return
	}

	claims := middleware.GetClaims(c)
	recipe, err := h.recipes.AddReview(c.Request.Context(), id, claims.UserID, req.Rating, req.Comment)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review added successfully",
		"data":    recipe,
	})
}

func (h *RecipeHandler) ToggleLike(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	recipe, liked, err := h.recipes.ToggleLike(c.Request.Context(), id, claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Like toggled successfully",
		"isLiked": liked,
		"data":    recipe,
	})
}

func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	isFavorite, err := h.users.ToggleFavorite(c.Request.Context(), claims.UserID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Recipe added to favorites"
	if !isFavorite {
		message = "Recipe removed from favorites"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    message,
		"isFavorite": isFavorite,
	})
}

// SetFeatured is the admin curation endpoint for the featured shelf.
func (h *RecipeHandler) SetFeatured(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req types.FeatureRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationErrors(c, types.FromBindingError(err))
		return
	}

	recipe, err := h.recipes.SetFeatured(c.Request.Context(), id, *req.IsFeatured)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Recipe featured successfully"
	if !recipe.IsFeatured {
		message = "Recipe unfeatured successfully"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    recipe,
	})
}

// bindRecipeBody accepts either a plain JSON body or a multipart form
// carrying a `data` JSON part plus an optional `image` file which is
// uploaded to object storage.
func (h *RecipeHandler) bindRecipeBody(c *gin.Context) (types.CreateRecipeRequest, bool) {
	var req types.CreateRecipeRequest

	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationErrors(c, types.FromBindingError(err))
			return req, false
		}
		return req, true
	}

	data := c.PostForm("data")
	if data == "" {
		respondValidationErrors(c, types.ValidationErrors{{Field: "data", Message: "recipe data is required"}})
		return req, false
	}
	if err := binding.JSON.BindBody([]byte(data), &req); err != nil {
		respondValidationErrors(c, types.FromBindingError(err))
		return req, false
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No image attached; keep whatever URL the payload carried.
		return req, true
	}
	if fileHeader.Size > maxImageBytes {
		respondValidationErrors(c, types.ValidationErrors{{Field: "image", Message: "image cannot exceed 5MB"}})
		return req, false
	}
	if !h.images.Enabled() {
		respondValidationErrors(c, types.ValidationErrors{{Field: "image", Message: "image uploads are not enabled"}})
		return req, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondServiceError(c, err)
		return req, false
	}
	defer func() { _ = file.Close() }()

	imageData, err := io.ReadAll(file)
	if err != nil {
		respondServiceError(c, err)
		return req, false
	}

	url, err := h.images.UploadRecipeImage(c.Request.Context(), imageData, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondServiceError(c, err)
		return req, false
	}
	req.ImageURL = url

	return req, true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
