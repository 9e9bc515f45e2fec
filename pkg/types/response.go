package types

// SuccessEnvelope wraps every successful storefront response body.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the rendered form of a coded failure. Details carries
// machine-readable context, such as the minimum a rejected coupon requires.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every failure response body.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
