package types

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required,min=1,max=150"`
	LastName  string `json:"last_name" binding:"required,min=1,max=150"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for token login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RecipeIngredientInput is one (ingredient id, amount) pair in a recipe
// submission.
type RecipeIngredientInput struct {
	ID     int64 `json:"id" binding:"required"`
	Amount int   `json:"amount"`
}

// RecipeRequest represents the request body for creating or updating a
// recipe. The image is a base64 payload (optionally a data URI) on write.
type RecipeRequest struct {
	Name        string                  `json:"name" binding:"required,max=200"`
	Text        string                  `json:"text" binding:"required"`
	CookingTime int                     `json:"cooking_time" binding:"required"`
	Image       string                  `json:"image"`
	Tags        []int64                 `json:"tags"`
	Ingredients []RecipeIngredientInput `json:"ingredients"`
}

// TagRequest represents the admin request body for creating a tag. The color
// is submitted with or without the leading '#' and stored without it.
type TagRequest struct {
	Name  string `json:"name" binding:"required,max=40"`
	Color string `json:"color" binding:"required"`
	Slug  string `json:"slug" binding:"required,max=50"`
}

// SetRoleRequest represents the admin request body for assigning a role.
type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
