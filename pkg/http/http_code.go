package http

var (
	Failed                        = failed(500, "Request failed")
	RequestParameterParsingFailed = failed(5001, "Request parameter parsing failed")
	InternalError                 = failed(5000, "Internal error, please contact the administrator")

	// BadRequest 400
	BadRequest        = failed(4000, "Bad request")
	ValidationFailed  = failed(4001, "Validation failed")
	FileTooLarge      = failed(4002, "File exceeds maximum allowed size")
	UnsupportedFile   = failed(4003, "File type is not allowed")
	NotFound          = failed(4004, "Not found")
	TooManyFiles      = failed(4005, "Too many files in request")
	LanguageNotActive = failed(4006, "Language is not active")

	// Conflict 409
	Conflict      = failed(4090, "Resource already exists")
	RecordInUse   = failed(4091, "Record is in use and cannot be deleted")
	CodeExhausted = failed(5002, "Unable to allocate a unique code")

	// DependencyFailed 502
	DependencyFailed = failed(5020, "Upstream dependency failed")
)

var (
	Success = success(200, "Request Success")
)

func failed(code int, msg string) *Response {
	return &Response{
		Code: code,
		Msg:  msg,
	}
}

func success(code int, msg string) *Response {
	return &Response{
		Code: code,
		Msg:  msg,
	}
}
