package api

import "github.com/antioquia-open-data/mortality-api/schema"

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1000: "service unavailable",

		1100: schema.ErrInvalidYear.Error(),
		1101: schema.ErrInvalidMetric.Error(),
		1102: schema.ErrInvalidDirection.Error(),
		1103: "invalid page",

		1200: "municipality not found",
	}

	errorInternalServer      = errorJSON(999)
	errorServiceUnavailable  = errorJSON(1000)
	errorInvalidYear         = errorJSON(1100)
	errorInvalidMetric       = errorJSON(1101)
	errorInvalidDirection    = errorJSON(1102)
	errorInvalidPage         = errorJSON(1103)
	errorMunicipalityMissing = errorJSON(1200)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
