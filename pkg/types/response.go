package types

// SuccessEnvelope wraps every 2xx JSON body as {"data": ...}.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public shape of a failed request. Details carries
// per-field validation problems and is omitted for server-side failures.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// NewErrorEnvelope builds the error body. Details are attached only when
// withDetails is set so internal failures never leak their context.
func NewErrorEnvelope(code, message string, details any, withDetails bool) ErrorEnvelope {
	env := ErrorEnvelope{Error: APIError{Code: code, Message: message}}
	if withDetails && details != nil {
		env.Error.Details = details
	}
	return env
}
