package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pawmart-web/internal/apiclient"
	"pawmart-web/internal/appointment"
	"pawmart-web/internal/cart"
	"pawmart-web/internal/checkout"
	"pawmart-web/internal/logger"
	"pawmart-web/internal/notice"
	"pawmart-web/internal/order"
	"pawmart-web/internal/payment"
	"pawmart-web/internal/user"
	"pawmart-web/internal/utils"

	"go.uber.org/zap"
)

// response mirrors the backend envelope so the UI reads both the same way.
type response struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message,omitempty"`
	Data     any               `json:"data,omitempty"`
	Notice   *notice.Notice    `json:"notice,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

func writeOK(w http.ResponseWriter, data any, n *notice.Notice) {
	utils.WriteJSON(w, http.StatusOK, response{Success: true, Data: data, Notice: n})
}

// writeError maps err onto a status code and a user-facing notice.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	res := response{Notice: notice.FromError(err, fallback)}
	res.Message = res.Notice.Message

	var (
		verrs    checkout.ValidationErrors
		redirect *checkout.RedirectError
		apiErr   *apiclient.APIError
		code     int
	)
	switch {
	case errors.As(err, &verrs):
		code = http.StatusUnprocessableEntity
		res.Errors = verrs
		res.Notice = notice.Error("Please fix the highlighted fields")
		res.Message = res.Notice.Message
	case errors.As(err, &redirect):
		code = http.StatusConflict
		res.Redirect = redirect.To
	case errors.Is(err, user.ErrUserNotAuthenticated):
		code = http.StatusUnauthorized
	case errors.Is(err, payment.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, appointment.ErrNotFound),
		errors.Is(err, payment.ErrHandoffNotFound),
		errors.Is(err, errNoCheckout):
		code = http.StatusNotFound
	case errors.Is(err, checkout.ErrSubmitInProgress),
		errors.Is(err, checkout.ErrAlreadySubmitted),
		errors.Is(err, appointment.ErrNotConfirmable),
		errors.Is(err, appointment.ErrNotCancellable):
		code = http.StatusConflict
	case errors.Is(err, errBadRequest),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrNotMounted),
		errors.Is(err, checkout.ErrIncompleteDelivery),
		errors.Is(err, cart.ErrMissingProductID),
		errors.Is(err, cart.ErrMissingItemID),
		errors.Is(err, order.ErrMissingProductID),
		errors.Is(err, appointment.ErrCancelDeclined),
		errors.Is(err, appointment.ErrInvalidBooking),
		errors.Is(err, appointment.ErrDetailsMismatch),
		errors.Is(err, appointment.ErrUnknownServiceType),
		errors.Is(err, payment.ErrInvalidStatus):
		code = http.StatusBadRequest
	case errors.As(err, &apiErr):
		code = http.StatusBadGateway
		if errors.Is(err, checkout.ErrSubmissionFailed) {
			// the form is kept, so the user can retry
			res.Notice.Level = notice.LevelWarning
		}
	default:
		code = http.StatusInternalServerError
	}

	if code >= http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Int("status", code),
			zap.Error(err),
		)
	}
	if code == http.StatusBadRequest && res.Notice.Message == fallback {
		res.Notice = notice.Error(err.Error())
		res.Message = res.Notice.Message
	}
	utils.WriteJSON(w, code, res)
}

var (
	errBadRequest = errors.New("malformed request body")
	errNoCheckout = errors.New("no checkout in progress")
)

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errBadRequest
	}
	return nil
}
