package constants

// Upstream provider error codes.

const (
	ErrCodeInvalidAPIKey     = "INVALID_API_KEY"
	ErrCodeUpstreamForbidden = "UPSTREAM_FORBIDDEN"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeNetworkError      = "NETWORK_ERROR"
	ErrCodeBadPayload        = "BAD_PAYLOAD"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
)

var providerErrorMessages = map[string]string{
	ErrCodeInvalidAPIKey:     "The flight data API key is invalid or has been revoked",
	ErrCodeUpstreamForbidden: "The current plan does not permit this flight data endpoint",
	ErrCodeRateLimited:       "The upstream provider rate limit was exceeded",
	ErrCodeNetworkError:      "Unable to reach the upstream flight data provider",
	ErrCodeBadPayload:        "The upstream response could not be decoded",
	ErrCodeInvalidRequest:    "The request to the upstream provider was malformed",
}

// GetErrorMessage returns the human-readable message for an error code.
func GetErrorMessage(code string) string {
	if msg, ok := providerErrorMessages[code]; ok {
		return msg
	}
	return "An unknown upstream error occurred"
}
