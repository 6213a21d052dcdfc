package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cloud-ru/mortgage-engine-go/internal/calculations"
	"github.com/cloud-ru/mortgage-engine-go/internal/service"
	"go.uber.org/zap"
)

var (
	errEmptyBody     = errors.New("пустое тело запроса")
	errBodyTooLarge  = errors.New("тело запроса слишком велико")
	errMalformedJSON = errors.New("некорректный JSON")
)

type errorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

// handle декодирует JSON-запрос, вызывает операцию и пишет результат или ошибку
func handle[Req any, Res any](s *Server, call func(context.Context, Req) (*Res, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if err := decodeJSON(w, r, s.cfg.MaxBodyBytes, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		result, err := call(r.Context(), req)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return fmt.Errorf("%w: лимит %d байт", errBodyTooLarge, tooLarge.Limit)
		case errors.Is(err, io.EOF):
			return errEmptyBody
		default:
			return fmt.Errorf("%w: %v", errMalformedJSON, err)
		}
	}
	return nil
}

// statusFor сопоставляет ошибку с HTTP-статусом
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge, "body_too_large"
	case errors.Is(err, errEmptyBody), errors.Is(err, errMalformedJSON):
		return http.StatusBadRequest, "malformed_request"
	case service.IsValidationError(err):
		return http.StatusBadRequest, service.ErrorType(err)
	case errors.Is(err, calculations.ErrComputation):
		return http.StatusUnprocessableEntity, service.ErrorType(err)
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, errorType := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("внутренняя ошибка",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("request_id", service.RequestIDFromContext(r.Context())),
		)
		message = "внутренняя ошибка сервера"
	}
	writeJSON(w, status, errorResponse{Error: message, Type: errorType})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
