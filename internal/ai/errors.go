package ai

import "errors"

// Extraction failure taxonomy. Every failure is terminal for the request;
// callers surface the message as-is and never retry.
var (
	// ErrEmptyInput is returned before any network call for blank input.
	ErrEmptyInput = errors.New("input text cannot be empty")

	// ErrNotConfigured is returned before any network call when no API key
	// is present.
	ErrNotConfigured = errors.New("GROQ_API_KEY is not configured")

	// ErrProvider covers transport failures, timeouts and non-success HTTP
	// statuses from the inference provider.
	ErrProvider = errors.New("AI API error")

	// ErrMalformedResponse means the provider reply could not be decoded
	// as JSON.
	ErrMalformedResponse = errors.New("AI returned invalid response, please try again")

	// ErrUnparseableInput means the provider explicitly reported that no
	// amount could be extracted.
	ErrUnparseableInput = errors.New("could not parse expense")

	// ErrInvalidAmount means the provider returned a non-positive amount.
	ErrInvalidAmount = errors.New("invalid amount, please specify a positive number")
)

// IsExtractionError reports whether err belongs to the gateway taxonomy.
// The HTTP boundary uses this to tell client errors (400) from store
// failures (500).
func IsExtractionError(err error) bool {
	for _, target := range []error{
		ErrEmptyInput,
		ErrNotConfigured,
		ErrProvider,
		ErrMalformedResponse,
		ErrUnparseableInput,
		ErrInvalidAmount,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
