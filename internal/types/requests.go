package types

// RegisterRequest represents the request body for user signup
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest carries a partial user update. Nil fields are left
// untouched.
type UpdateUserRequest struct {
	Username       *string `json:"username"`
	Email          *string `json:"email"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title       string   `json:"title" binding:"required,max=100"`
	Description string   `json:"description" binding:"required,max=255"`
	Tags        []string `json:"tags"`
	Ingredients []string `json:"ingredients" binding:"required"`
	CookingTime int      `json:"cooking_time" binding:"required"`
	Difficulty  int      `json:"difficulty" binding:"required"`
	Image       string   `json:"image"`
	Steps       string   `json:"steps"`
	// AuthorID is optional; when set it must match the authenticated user.
	AuthorID uint `json:"author_id"`
}

// UpdateRecipeRequest carries a partial recipe update. Nil fields are left
// untouched.
type UpdateRecipeRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Ingredients *[]string `json:"ingredients"`
	CookingTime *int      `json:"cooking_time"`
	Difficulty  *int      `json:"difficulty"`
	Image       *string   `json:"image"`
	Steps       *string   `json:"steps"`
}

// RecipeFilter narrows recipe listings. Zero values mean "no filter".
type RecipeFilter struct {
	Query          string
	Tag            string
	Difficulty     int
	MaxCookingTime int
	AuthorID       uint
	Skip           int
	Limit          int
}
