package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/talentforge/assessment-engine/internal/domain"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto the API error taxonomy. Unexpected
// errors surface their detail only when verbose is set (development).
func writeError(w http.ResponseWriter, _ *http.Request, err error, details interface{}, verbose bool) {
	status := http.StatusInternalServerError
	code := "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = "INVALID_ARGUMENT"
	case errors.Is(err, domain.ErrJobNotFound):
		status = http.StatusNotFound
		code = "JOB_NOT_FOUND"
	case errors.Is(err, domain.ErrAssessmentDisabled):
		status = http.StatusBadRequest
		code = "ASSESSMENT_DISABLED"
	case errors.Is(err, domain.ErrUserNotFound):
		status = http.StatusBadRequest
		code = "USER_NOT_FOUND"
	case errors.Is(err, domain.ErrResumeNotAnalyzed):
		status = http.StatusBadRequest
		code = "RESUME_NOT_ANALYZED"
	case errors.Is(err, domain.ErrNotApplied):
		status = http.StatusBadRequest
		code = "NOT_APPLIED"
	case errors.Is(err, domain.ErrMatchBelowThreshold):
		status = http.StatusBadRequest
		code = "MATCH_BELOW_THRESHOLD"
	case errors.Is(err, domain.ErrGenerationExhausted):
		status = http.StatusServiceUnavailable
		code = "GENERATION_EXHAUSTED"
	case errors.Is(err, domain.ErrInsufficientQuestions):
		status = http.StatusServiceUnavailable
		code = "INSUFFICIENT_UNIQUE_QUESTIONS"
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		code = "NOT_FOUND"
	}

	msg := err.Error()
	if code == "INTERNAL" && !verbose {
		msg = "internal error"
	}
	writeJSON(w, status, errorEnvelope{Error: apiError{Code: code, Message: msg, Details: details}})
}
