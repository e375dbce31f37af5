package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldUserID      = "user_id"
	FieldExpenseID   = "expense_id"
	FieldCategoryID  = "category_id"
	FieldAmountCents = "amount_cents"
	FieldExpenseDate = "expense_date"
	FieldStreak      = "streak"
	FieldLongest     = "longest_streak"
	FieldAchievement = "achievement"
	FieldCount       = "count"
	FieldDBPath      = "db_path"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentCLI      = "cli"
	ComponentServices = "services"
	ComponentStorage  = "storage"
)
