package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldUserAgent = "user_agent"
	FieldError     = "error"
	FieldExpenseID = "expense_id"
	FieldAmount    = "amount"
	FieldCurrency  = "currency"
	FieldCategory  = "category"
)

// Standard component names.
const (
	ComponentApp  = "app"
	ComponentHTTP = "http"
)
