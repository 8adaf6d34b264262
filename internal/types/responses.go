package types

// Pagination describes the page window of a listing response.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalRecipes int64 `json:"totalRecipes"`
	HasNext      bool  `json:"hasNext"`
	HasPrev      bool  `json:"hasPrev"`
}

// TopChef is one row of the top-chefs listing.
type TopChef struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio"`
	RecipeCount int    `json:"recipe_count"`
}
