package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/elevatex/internal/service/authservice"
	"github.com/GlebRadaev/elevatex/internal/service/graphservice"
	"github.com/GlebRadaev/elevatex/internal/service/leaderboardservice"
	"github.com/GlebRadaev/elevatex/internal/service/notificationservice"
	"github.com/GlebRadaev/elevatex/internal/service/placementservice"
	"github.com/GlebRadaev/elevatex/internal/service/referralservice"
	"github.com/GlebRadaev/elevatex/internal/service/walletservice"
	"github.com/GlebRadaev/elevatex/pkg/auth"
	"github.com/GlebRadaev/elevatex/pkg/utils"
	"github.com/GlebRadaev/elevatex/pkg/validate"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	MsgInvalidBody  = "Invalid request body"
	MsgUnauthorized = "Unauthorized"
	MsgInternal     = "Internal server error"
)

var statuses = []struct {
	err    error
	status int
}{
	{placementservice.ErrInvalidReferralCode, http.StatusBadRequest},
	{walletservice.ErrInvalidAmount, http.StatusBadRequest},
	{walletservice.ErrBelowMinimum, http.StatusBadRequest},
	{walletservice.ErrFundingOutOfRange, http.StatusBadRequest},
	{authservice.ErrInvalidOTP, http.StatusBadRequest},
	{leaderboardservice.ErrInvalidPeriod, http.StatusBadRequest},
	{authservice.ErrInvalidCredentials, http.StatusUnauthorized},
	{walletservice.ErrInsufficientBalance, http.StatusPaymentRequired},
	{walletservice.ErrNotActivated, http.StatusForbidden},
	{authservice.ErrPhoneNotVerified, http.StatusForbidden},
	{authservice.ErrUserNotFound, http.StatusNotFound},
	{walletservice.ErrUserNotFound, http.StatusNotFound},
	{referralservice.ErrUserNotFound, http.StatusNotFound},
	{leaderboardservice.ErrUserNotFound, http.StatusNotFound},
	{walletservice.ErrTransactionNotFound, http.StatusNotFound},
	{notificationservice.ErrNotificationNotFound, http.StatusNotFound},
	{graphservice.ErrNotPlaced, http.StatusNotFound},
	{graphservice.ErrChainNotFound, http.StatusNotFound},
	{placementservice.ErrDuplicatePlacement, http.StatusConflict},
	{authservice.ErrUserExists, http.StatusConflict},
	{walletservice.ErrAlreadyActivated, http.StatusConflict},
	{walletservice.ErrUnsupportedTransaction, http.StatusUnprocessableEntity},
	{placementservice.ErrChainCapacityExhausted, http.StatusServiceUnavailable},
}

// Status maps a service error to its HTTP status. Unknown errors are 500.
func Status(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

func RespondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
		utils.RespondWithError(w, status, MsgInternal)
		return
	}
	utils.RespondWithError(w, status, err.Error())
}

// DecodeAndValidate reads a JSON body into v and runs the struct validators.
// It writes the error response itself and reports whether the handler may go on.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, MsgInvalidBody)
		return false
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid field: "+verrs[0].Field())
			return false
		}
		utils.RespondWithError(w, http.StatusBadRequest, MsgInvalidBody)
		return false
	}
	return true
}

func UserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, MsgUnauthorized)
	}
	return id, ok
}

// IntQuery returns the named query parameter, def when it is missing or malformed.
func IntQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
