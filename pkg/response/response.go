package response

// ErrorBody is the envelope returned by middleware-level rejections.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Error(code, message string, details any) ErrorBody {
	return ErrorBody{Code: code, Message: message, Details: details}
}
