package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	pkgerrors "github.com/brandbuddy-hq/brandbuddy-backend/pkg/errors"
	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/logger"
	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/types"
)

// timeNowUTC is swapped out by tests that need deterministic envelopes.
var timeNowUTC = func() time.Time { return time.Now().UTC() }

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessMessage(w, data, "")
}

func WriteSuccessMessage(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, types.Envelope{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: types.Timestamp(timeNowUTC()),
	})
}

func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeMethodNotAllowed,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConfig,
		pkgerrors.CodeUpstream:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	payload := types.Envelope{
		Success:   false,
		Error:     msg,
		Timestamp: types.Timestamp(timeNowUTC()),
	}

	if meta.DetailsAllowed {
		if details := typed.Details(); details != nil {
			payload.Details = details
		} else if cause := typed.Unwrap(); cause != nil {
			payload.Details = cause.Error()
		}
	}

	if logg != nil {
		dump := pkgerrors.Dump(err)
		ctx = logg.WithFields(ctx, map[string]any{
			"error":       dump.TopMessage,
			"error_code":  dump.Code,
			"error_chain": dump.Chain,
		})
		logg.Error(ctx, "request.error", err)
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
