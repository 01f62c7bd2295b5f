package types

// SignUpRequest represents the request body for account creation
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// SignInRequest represents the request body for sign-in
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest sets the daily calorie target. Null or 0 clears it.
type UpdateProfileRequest struct {
	TargetCalories *int `json:"target_calories" binding:"omitempty,min=0"`
}

// EstimateRequest is a free-text meal description to estimate
type EstimateRequest struct {
	Description string `json:"description" binding:"required"`
}

// MealRequest is the full set of fields for creating or replacing a meal
type MealRequest struct {
	Name        string   `json:"name" binding:"max=255"`
	Description string   `json:"description" binding:"required"`
	Date        string   `json:"date" binding:"required"`
	Calories    *int     `json:"calories" binding:"required,min=0"`
	Protein     *float64 `json:"protein" binding:"required,min=0"`
	Carbs       *float64 `json:"carbs" binding:"required,min=0"`
	Fats        *float64 `json:"fats" binding:"required,min=0"`
	Analysis    string   `json:"analysis"`
	// DraftID, when set, names the estimation draft this meal was confirmed from
	DraftID string `json:"draft_id"`
}

// UpdateMacrosRequest edits any subset of a meal's macros
type UpdateMacrosRequest struct {
	Calories *int     `json:"calories" binding:"omitempty,min=0"`
	Protein  *float64 `json:"protein" binding:"omitempty,min=0"`
	Carbs    *float64 `json:"carbs" binding:"omitempty,min=0"`
	Fats     *float64 `json:"fats" binding:"omitempty,min=0"`
}

// Empty reports whether the request changes nothing
func (r UpdateMacrosRequest) Empty() bool {
	return r.Calories == nil && r.Protein == nil && r.Carbs == nil && r.Fats == nil
}

// RangeQuery selects an inclusive date range. A missing end means a single day.
type RangeQuery struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end"`
}

// SummaryQuery selects the range and shape of a summary
type SummaryQuery struct {
	RangeQuery
	Granularity string `form:"granularity" binding:"omitempty,oneof=day week"`
	Order       string `form:"order" binding:"omitempty,oneof=asc desc"`
}

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
