package errors

// ErrorCode is the machine-readable error code returned to clients.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1004
	ErrorCode_FORBIDDEN        ErrorCode = 1005

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN  ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED  ErrorCode = 2001
	ErrorCode_AUTH_USER_NOT_FOUND ErrorCode = 2002

	// Upload / document processing
	ErrorCode_NO_FILES              ErrorCode = 3000
	ErrorCode_INVALID_FILE_TYPE     ErrorCode = 3001
	ErrorCode_FILE_TOO_LARGE        ErrorCode = 3002
	ErrorCode_INVALID_CONTEXT       ErrorCode = 3003
	ErrorCode_INVALID_ROLE          ErrorCode = 3004
	ErrorCode_PDF_EXTRACTION_FAILED ErrorCode = 3005

	// Summarization
	ErrorCode_GENERATION_FAILED ErrorCode = 4000
	ErrorCode_INVALID_ACTION    ErrorCode = 4001
	ErrorCode_REFINEMENT_FAILED ErrorCode = 4002

	// Export
	ErrorCode_INVALID_FORMAT ErrorCode = 5000
	ErrorCode_EXPORT_FAILED  ErrorCode = 5001

	// Infrastructure
	ErrorCode_DB_QUERY_FAILED ErrorCode = 6000
	ErrorCode_STORAGE_FAILED  ErrorCode = 6001
	ErrorCode_CACHE_FAILED    ErrorCode = 6002
	ErrorCode_INVALID_PAYLOAD ErrorCode = 6003
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:               "OK",
	ErrorCode_INTERNAL:              "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:      "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:             "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:        "ALREADY_EXISTS",
	ErrorCode_UNAUTHENTICATED:       "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:             "FORBIDDEN",
	ErrorCode_AUTH_INVALID_TOKEN:    "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:    "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_USER_NOT_FOUND:   "AUTH_USER_NOT_FOUND",
	ErrorCode_NO_FILES:              "NO_FILES",
	ErrorCode_INVALID_FILE_TYPE:     "INVALID_FILE_TYPE",
	ErrorCode_FILE_TOO_LARGE:        "FILE_TOO_LARGE",
	ErrorCode_INVALID_CONTEXT:       "INVALID_CONTEXT",
	ErrorCode_INVALID_ROLE:          "INVALID_ROLE",
	ErrorCode_PDF_EXTRACTION_FAILED: "PDF_EXTRACTION_FAILED",
	ErrorCode_GENERATION_FAILED:     "GENERATION_FAILED",
	ErrorCode_INVALID_ACTION:        "INVALID_ACTION",
	ErrorCode_REFINEMENT_FAILED:     "REFINEMENT_FAILED",
	ErrorCode_INVALID_FORMAT:        "INVALID_FORMAT",
	ErrorCode_EXPORT_FAILED:         "EXPORT_FAILED",
	ErrorCode_DB_QUERY_FAILED:       "DB_QUERY_FAILED",
	ErrorCode_STORAGE_FAILED:        "STORAGE_FAILED",
	ErrorCode_CACHE_FAILED:          "CACHE_FAILED",
	ErrorCode_INVALID_PAYLOAD:       "INVALID_PAYLOAD",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
