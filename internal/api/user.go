package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recipeshare/backend/internal/middleware"
	"github.com/recipeshare/backend/internal/service"
	"github.com/recipeshare/backend/internal/types"
)

// UserHandler serves profiles, favorites, the follow graph and user
// discovery.
type UserHandler struct {
	users     *service.UserService
	recipes   *service.RecipeService
	validator middleware.TokenValidator
}

func NewUserHandler(users *service.UserService, recipes *service.RecipeService, validator middleware.TokenValidator) *UserHandler {
	return &UserHandler{
		users:     users,
		recipes:   recipes,
		validator: validator,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/profile/:username", h.GetProfile)
		users.GET("/my-recipes", middleware.AuthMiddleware(h.validator), h.MyRecipes)
		users.GET("/favorites", middleware.AuthMiddleware(h.validator), h.Favorites)
		users.GET("/search", h.SearchUsers)
		users.GET("/top-chefs", h.TopChefs)
		users.POST("/:id/follow", middleware.AuthMiddleware(h.validator), h.ToggleFollow)
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.users.ProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
	})
}

func (h *UserHandler) MyRecipes(c *gin.Context) {
	claims := middleware.GetClaims(c)
	recipes, err := h.recipes.ByAuthor(c.Request.Context(), claims.UserID, true)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    recipes,
	})
}

func (h *UserHandler) Favorites(c *gin.Context) {
	claims := middleware.GetClaims(c)
	recipes, err := h.users.Favorites(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    recipes,
	})
}

func (h *UserHandler) SearchUsers(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondValidationErrors(c, types.ValidationErrors{{Field: "q", Message: "search query is required"}})
		return
	}

	users, err := h.users.Search(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
	})
}

func (h *UserHandler) TopChefs(c *gin.Context) {
	chefs, err := h.users.TopChefs(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    chefs,
	})
}

func (h *UserHandler) ToggleFollow(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	following, err := h.users.ToggleFollow(c.Request.Context(), claims.UserID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "User followed successfully"
	if !following {
		message = "User unfollowed successfully"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     message,
		"isFollowing": following,
	})
}
