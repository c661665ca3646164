package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/dto"
	"github.com/GlebRadaev/elevatex/internal/handlers/common"
	pkgauth "github.com/GlebRadaev/elevatex/pkg/auth"
	"github.com/GlebRadaev/elevatex/pkg/utils"
)

const msgNothingToUpdate = "Nothing to update"

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=auth

type Service interface {
	Signup(ctx context.Context, reg domain.Registration) (*domain.User, *domain.PlacementResult, error)
	VerifyOTP(ctx context.Context, phone, code string) (*domain.User, error)
	ResendOTP(ctx context.Context, phone string) error
	Authenticate(ctx context.Context, phone, password string) (*domain.User, error)
	ForgotPassword(ctx context.Context, phone string) error
	ResetPassword(ctx context.Context, phone, code, newPassword string) error
	GenerateToken(userID int) (string, error)
	GetProfile(ctx context.Context, userID int) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int, upd domain.ProfileUpdate) (*domain.User, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup godoc
//
//	@Summary		Register a new user
//	@Description	Create an account, send a phone OTP and place the user in a chain
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SignupRequestDTO	true	"Signup request body"
//	@Success		201		{object}	dto.SignupResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body or unknown referral code"
//	@Failure		409		{object}	utils.Response	"User already exists"
//	@Failure		422		{object}	utils.Response	"Validation failed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequestDTO
	if !common.DecodeAndValidate(w, r, &req) {
		return
	}
	user, placement, err := h.authService.Signup(r.Context(), domain.Registration{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		NIN:          req.NIN,
		Password:     req.Password,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.SignupResponseDTO{
		Message:   "Account created, verify your phone number",
		User:      dto.ToUserDTO(user),
		Placement: dto.ToPlacementDTO(placement),
	})
}

// VerifyOTP godoc
//
//	@Summary		Verify phone number
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.VerifyOTPRequestDTO	true	"Phone and code"
//	@Success		200		{object}	dto.TokenResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid or expired otp"
//	@Failure		422		{object}	utils.Response	"Validation failed"
//	@Router			/api/auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyOTPRequestDTO
	if !common.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := h.authService.VerifyOTP(r.Context(), req.Phone, req.OTP)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	h.respondWithToken(w, user, "Phone number verified")
}

// Login godoc
//
//	@Summary		Authenticate user
//	@Description	Log in with phone number and password and get a JWT token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login request body"
//	@Success		200		{object}	dto.TokenResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Invalid credentials"
//	@Failure		403		{object}	utils.Response	"Phone number is not verified"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if !common.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := h.authService.Authenticate(r.Context(), req.Phone, req.Password)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	h.respondWithToken(w, user, "User successfully authenticated")
}

// ForgotPassword godoc
//
//	@Summary	Send a password reset code
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.PhoneRequestDTO	true	"Phone number"
//	@Success	200		{object}	dto.MessageResponseDTO
//	@Failure	404		{object}	utils.Response	"User not found"
//	@Router		/api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.PhoneRequestDTO
	if !common.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := h.authService.ForgotPassword(r.Context(), req.Phone); err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MessageResponseDTO{Message: "Password reset code sent"})
}

// ResetPassword godoc
//
//	@Summary	Reset password with an OTP
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.ResetPasswordRequestDTO	true	"Reset request"
//	@Success	200		{object}	dto.MessageResponseDTO
//	@Failure	400		{object}	utils.Response	"Invalid or expired otp"
//	@Router		/api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequestDTO
	if !common.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := h.authService.ResetPassword(r.Context(), req.Phone, req.OTP, req.NewPassword); err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MessageResponseDTO{Message: "Password updated"})
}

// ResendOTP godoc
//
//	@Summary	Resend the phone verification code
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.PhoneRequestDTO	true	"Phone number"
//	@Success	200		{object}	dto.MessageResponseDTO
//	@Failure	404		{object}	utils.Response	"User not found"
//	@Router		/api/auth/resend-otp [post]
func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.PhoneRequestDTO
	if !common.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := h.authService.ResendOTP(r.Context(), req.Phone); err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MessageResponseDTO{Message: "OTP sent"})
}

// Me godoc
//
//	@Summary	Current user profile
//	@Tags		Users
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.UserDTO
//	@Failure	401	{object}	utils.Response	"Unauthorized"
//	@Failure	404	{object}	utils.Response	"User not found"
//	@Router		/api/users/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(w, r)
	if !ok {
		return
	}
	user, err := h.authService.GetProfile(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToUserDTO(user))
}

// UpdateProfile godoc
//
//	@Summary	Update the current user's name or email
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.UpdateProfileRequestDTO	true	"Fields to change"
//	@Success	200		{object}	dto.UserDTO
//	@Failure	400		{object}	utils.Response	"Invalid request body or nothing to update"
//	@Failure	401		{object}	utils.Response	"Unauthorized"
//	@Failure	409		{object}	utils.Response	"Email already in use"
//	@Failure	422		{object}	utils.Response	"Validation failed"
//	@Router		/api/users/me [put]
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(w, r)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequestDTO
	if !common.DecodeAndValidate(w, r, &req) {
		return
	}
	if req.Name == nil && req.Email == nil {
		utils.RespondWithError(w, http.StatusBadRequest, msgNothingToUpdate)
		return
	}
	user, err := h.authService.UpdateProfile(r.Context(), userID, domain.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToUserDTO(user))
}

// Logout godoc
//
//	@Summary	Revoke the bearer token
//	@Tags		Auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.MessageResponseDTO
//	@Failure	401	{object}	utils.Response	"Unauthorized"
//	@Router		/api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := pkgauth.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, common.MsgUnauthorized)
		return
	}
	// tokens issued without an id cannot be revoked and simply run out
	if claims.Id != "" {
		if err := h.authService.Logout(r.Context(), claims.Id, claims.ExpiresAtTime()); err != nil {
			common.RespondWithServiceError(w, r, err)
			return
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MessageResponseDTO{Message: "Logged out successfully"})
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, user *domain.User, message string) {
	token, err := h.authService.GenerateToken(user.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusOK, dto.TokenResponseDTO{
		Message: message,
		Token:   token,
		User:    dto.ToUserDTO(user),
	})
}
