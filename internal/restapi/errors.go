package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"nthudata.org/api/internal/logging"
	"nthudata.org/api/internal/models"
)

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "request failed", err,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))

	setJSONResponseType(&w)
	w.WriteHeader(http.StatusInternalServerError)

	response := models.NewResponse(http.StatusInternalServerError, nil, "internal server error")
	if encoderErr := json.NewEncoder(w).Encode(response); encoderErr != nil {
		api.Logger.Error("failed to encode server error response", "error", encoderErr)
	}
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		Code        int                 `json:"code"`
		CurrentTime int64               `json:"currentTime"`
		FieldErrors map[string][]string `json:"fieldErrors"`
		Text        string              `json:"text"`
		Version     int                 `json:"version"`
	}{
		Code:        http.StatusBadRequest,
		CurrentTime: models.ResponseCurrentTime(),
		FieldErrors: fieldErrors,
		Text:        "invalid request parameters",
		Version:     2,
	}

	setJSONResponseType(&w)
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		api.Logger.Error("failed to encode validation error response", "error", err)
	}
}
