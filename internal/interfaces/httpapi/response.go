package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
	"github.com/riskibarqy/homerun-derby/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "homerun-derby"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var responseBufferPool bytebufferpool.Pool

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := responseBufferPool.Get()
	defer responseBufferPool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		buf.Reset()
		buf.SetString(`{"apiVersion":"` + googleAPIVersion + `","error":{"code":500,"message":"encode response failed","status":"INTERNAL"}}`)
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		message = "internal server error"
	}
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: message,
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

// mapError checks roster rules before the generic sentinels: a roster error
// may also wrap ErrInvalidInput.
func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, roster.ErrIllegalPositionChange):
		return mappedError{
			HTTPStatus: http.StatusUnprocessableEntity,
			Reason:     "illegalPositionChange",
			Status:     "FAILED_PRECONDITION",
		}
	case errors.Is(err, roster.ErrPositionOccupied):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "positionOccupied",
			Status:     "ALREADY_EXISTS",
		}
	case errors.Is(err, roster.ErrSlotAlreadyOpen):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "slotAlreadyOpen",
			Status:     "ALREADY_EXISTS",
		}
	case errors.Is(err, roster.ErrSlotNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "slotNotFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, roster.ErrInvalidEffectiveDate):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidEffectiveDate",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, roster.ErrUnknownPosition):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "unknownPosition",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, roster.ErrInvalidSwap):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidSwap",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "upstreamUnavailable",
			Status:     "UNAVAILABLE",
		}
	case errors.Is(err, usecase.ErrTransient):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "transientDbError",
			Status:     "ABORTED",
		}
	case errors.Is(err, usecase.ErrJobInProgress):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "jobInProgress",
			Status:     "ABORTED",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}
