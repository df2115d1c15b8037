package service

import "errors"

// Request-local failures the handlers translate to HTTP statuses. None of
// these are fatal to the serving process.
var (
	// Validation errors: rejected before any persistence.
	ErrEmptyIngredients    = errors.New("recipe must have at least one ingredient")
	ErrInvalidAmount       = errors.New("ingredient amount must be at least 1")
	ErrDuplicateIngredient = errors.New("ingredient ids must be unique within a recipe")
	ErrInvalidCookingTime  = errors.New("cooking time must be at least 1")
	ErrIngredientNotFound  = errors.New("ingredient does not exist")
	ErrTagNotFound         = errors.New("tag does not exist")
	ErrInvalidRole         = errors.New("unknown role")
	ErrInvalidImage        = errors.New("image payload is not valid base64")

	// Conflict errors: duplicate pairs, self-follow, taken identifiers.
	ErrAlreadyFavorited = errors.New("recipe is already in favorites")
	ErrAlreadyInBasket  = errors.New("recipe is already in the shopping cart")
	ErrAlreadyFollowing = errors.New("already following this author")
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrEmailTaken       = errors.New("user with this email already exists")
	ErrUsernameTaken    = errors.New("user with this username already exists")
	ErrTagTaken         = errors.New("tag with this name, color or slug already exists")

	// Not-found errors: surfaced distinctly from conflicts.
	ErrNotFavorited = errors.New("recipe is not in favorites")
	ErrNotInBasket  = errors.New("recipe is not in the shopping cart")
	ErrNotFollowing = errors.New("not following this author")
	ErrNotFound     = errors.New("not found")

	// Authorization errors.
	ErrForbidden          = errors.New("operation not permitted")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCartEmpty is the distinct "nothing to aggregate" failure for the
	// shopping-list download; it is not a zero-row success.
	ErrCartEmpty = errors.New("shopping cart is empty")
)
