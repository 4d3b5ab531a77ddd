package types

// RecipeRequest is the JSON form of a recipe or ingredients request. Multipart
// and urlencoded forms carry the same field names.
type RecipeRequest struct {
	Ingredients        string `json:"ingredients" form:"ingredients"`
	DietaryRestriction string `json:"dietaryRestriction" form:"dietaryRestriction"`
}

// IngredientsResponse is returned by POST /ingredients
type IngredientsResponse struct {
	Ingredients string `json:"ingredients"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
