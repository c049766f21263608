package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	cerrors "github.com/tindaph/tindaph/utils/errors"
	"github.com/tindaph/tindaph/utils/logger"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body for every failed request.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.String("error", err.Error()))
	}
}

// writeError maps a domain error onto its HTTP status. Anything that is not
// a CustomError becomes a generic 500 with no detail leaked to the client.
func writeError(w http.ResponseWriter, err error) {
	var ce cerrors.CustomError
	if errors.As(err, &ce) {
		writeJSON(w, ce.ErrorHTTPCode(), ErrorResponse{
			Code:    ce.ErrorCode(),
			Message: ce.Error(),
		})
		return
	}

	logger.Error("unhandled error", zap.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Message: "internal server error",
	})
}
