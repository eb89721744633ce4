// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/learnrec/internal/logging"
	"github.com/tomtom215/learnrec/internal/models"
	"github.com/tomtom215/learnrec/internal/recommend"
	"github.com/tomtom215/learnrec/internal/validation"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// statusClientClosedRequest is nginx's non-standard code for a client that
// went away before the response was ready.
const statusClientClosedRequest = 499

// sanitizeLogValue replaces control characters to prevent log injection.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON writes the envelope with the given status.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess wraps data in a success envelope. start is the time the
// handler began work.
func respondSuccess(w http.ResponseWriter, status int, data interface{}, start time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status: models.StatusSuccess,
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondError writes an error envelope. err, when set, is logged and not
// sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	respondAPIError(w, r, status, &models.APIError{Code: code, Message: message}, err)
}

func respondAPIError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError, err error) {
	if err != nil {
		event := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Str("code", sanitizeLogValue(apiErr.Code)).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   models.StatusError,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    apiErr,
	})
}

// respondEngineError maps engine errors onto HTTP statuses.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.RequestValidationError

	switch {
	case errors.Is(err, recommend.ErrNotFound):
		respondError(w, r, http.StatusNotFound, models.CodeNotFound, err.Error(), nil)
	case errors.Is(err, recommend.ErrInvalidEvent), errors.Is(err, recommend.ErrInvalidContent):
		code := models.CodeInvalidEvent
		if errors.Is(err, recommend.ErrInvalidContent) {
			code = models.CodeInvalidContent
		}
		apiErr := &models.APIError{Code: code, Message: err.Error()}
		if errors.As(err, &verr) {
			apiErr.Details = verr.ToAPIError().Details
		}
		respondAPIError(w, r, http.StatusBadRequest, apiErr, err)
	case errors.Is(err, context.Canceled):
		respondError(w, r, statusClientClosedRequest, models.CodeRequestCancelled, "Request cancelled", err)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusServiceUnavailable, models.CodeUnavailable, "Request timed out", err)
	default:
		respondError(w, r, http.StatusInternalServerError, models.CodeInternal, "Internal server error", err)
	}
}

// decodeJSON reads a bounded JSON body into dst and validates it with
// go-playground/validator. It writes the error response itself and reports
// whether the handler should continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, r, http.StatusRequestEntityTooLarge, models.CodeBadRequest, "Request body too large", err)
		return false
	}
	if len(body) == 0 {
		respondError(w, r, http.StatusBadRequest, models.CodeBadRequest, "Request body is required", nil)
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		respondError(w, r, http.StatusBadRequest, models.CodeBadRequest, "Invalid JSON body", err)
		return false
	}
	if apiErr := validateRequest(dst); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return false
	}
	return true
}

// validateRequest converts validator failures into a VALIDATION_ERROR body.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}
	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// getIntParam extracts an integer query parameter, falling back to
// defaultValue when it is absent or malformed.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return intValue
}
