package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/dto"
	"github.com/GlebRadaev/elevatex/internal/service/authservice"
	"github.com/GlebRadaev/elevatex/internal/service/placementservice"
	pkgauth "github.com/GlebRadaev/elevatex/pkg/auth"
	"github.com/GlebRadaev/elevatex/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

const signupBody = `{"name":"Ada Obi","phone":"08031234567","email":"ada@example.com","nin":"12345678901","password":"Str0ng!pass"}`

func TestSignupHandler(t *testing.T) {
	reg := domain.Registration{
		Name:     "Ada Obi",
		Phone:    "08031234567",
		Email:    "ada@example.com",
		NIN:      "12345678901",
		Password: "Str0ng!pass",
	}
	user := &domain.User{ID: 1, Name: "Ada Obi", Phone: "08031234567", ReferralCode: "ELX1234567897"}

	tests := []struct {
		name          string
		body          string
		prepareMock   func(s *MockService)
		expectedCode  int
		expectedError string
		wantPlacement bool
	}{
		{
			name: "Successful signup",
			body: signupBody,
			prepareMock: func(s *MockService) {
				s.EXPECT().Signup(gomock.Any(), reg).Return(user,
					&domain.PlacementResult{UserID: 1, ChainID: 1, PositionInChain: 1, PlacementType: domain.PlacementSystem}, nil)
			},
			expectedCode:  http.StatusCreated,
			wantPlacement: true,
		},
		{
			name: "Signup without placement",
			body: signupBody,
			prepareMock: func(s *MockService) {
				s.EXPECT().Signup(gomock.Any(), reg).Return(user, nil, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "User already exists",
			body: signupBody,
			prepareMock: func(s *MockService) {
				s.EXPECT().Signup(gomock.Any(), reg).Return(nil, nil, authservice.ErrUserExists)
			},
			expectedCode:  http.StatusConflict,
			expectedError: authservice.ErrUserExists.Error(),
		},
		{
			name: "Unknown referral code",
			body: `{"name":"Ada Obi","phone":"08031234567","email":"ada@example.com","nin":"12345678901","password":"Str0ng!pass","referral_code":"ELX9876543217"}`,
			prepareMock: func(s *MockService) {
				withCode := reg
				withCode.ReferralCode = "ELX9876543217"
				s.EXPECT().Signup(gomock.Any(), withCode).Return(nil, nil, placementservice.ErrInvalidReferralCode)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: placementservice.ErrInvalidReferralCode.Error(),
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func(s *MockService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Weak password",
			body:          `{"name":"Ada Obi","phone":"08031234567","email":"ada@example.com","nin":"12345678901","password":"password"}`,
			prepareMock:   func(s *MockService) {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid field: Password",
		},
		{
			name:          "Malformed referral code",
			body:          `{"name":"Ada Obi","phone":"08031234567","email":"ada@example.com","nin":"12345678901","password":"Str0ng!pass","referral_code":"ELX1"}`,
			prepareMock:   func(s *MockService) {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid field: ReferralCode",
		},
		{
			name: "Storage failure",
			body: signupBody,
			prepareMock: func(s *MockService) {
				s.EXPECT().Signup(gomock.Any(), reg).Return(nil, nil, errors.New("connection reset"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Signup(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}
			var resp dto.SignupResponseDTO
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "ELX1234567897", resp.User.ReferralCode)
			assert.Equal(t, tt.wantPlacement, resp.Placement != nil)
		})
	}
}

func TestLoginHandler(t *testing.T) {
	user := &domain.User{ID: 1, Phone: "08031234567", PhoneVerified: true}

	tests := []struct {
		name          string
		body          string
		prepareMock   func(s *MockService)
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful login",
			body: `{"phone":"08031234567","password":"Str0ng!pass"}`,
			prepareMock: func(s *MockService) {
				s.EXPECT().Authenticate(gomock.Any(), "08031234567", "Str0ng!pass").Return(user, nil)
				s.EXPECT().GenerateToken(1).Return("some-jwt-token", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Invalid credentials",
			body: `{"phone":"08031234567","password":"wrong"}`,
			prepareMock: func(s *MockService) {
				s.EXPECT().Authenticate(gomock.Any(), "08031234567", "wrong").Return(nil, authservice.ErrInvalidCredentials)
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: authservice.ErrInvalidCredentials.Error(),
		},
		{
			name: "Phone not verified",
			body: `{"phone":"08031234567","password":"Str0ng!pass"}`,
			prepareMock: func(s *MockService) {
				s.EXPECT().Authenticate(gomock.Any(), "08031234567", "Str0ng!pass").Return(nil, authservice.ErrPhoneNotVerified)
			},
			expectedCode:  http.StatusForbidden,
			expectedError: authservice.ErrPhoneNotVerified.Error(),
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func(s *MockService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Error generating token",
			body: `{"phone":"08031234567","password":"Str0ng!pass"}`,
			prepareMock: func(s *MockService) {
				s.EXPECT().Authenticate(gomock.Any(), "08031234567", "Str0ng!pass").Return(user, nil)
				s.EXPECT().GenerateToken(1).Return("", errors.New("token generation error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error generating token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Login(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}
			assert.Equal(t, "Bearer some-jwt-token", rr.Header().Get("Authorization"))
			var resp dto.TokenResponseDTO
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "some-jwt-token", resp.Token)
		})
	}
}

func TestOTPHandlers(t *testing.T) {
	tests := []struct {
		name         string
		call         func(h *AuthHandler) http.HandlerFunc
		body         string
		prepareMock  func(s *MockService)
		expectedCode int
	}{
		{
			name: "Verify OTP",
			call: func(h *AuthHandler) http.HandlerFunc { return h.VerifyOTP },
			body: `{"phone":"08031234567","otp":"123456"}`,
			prepareMock: func(s *MockService) {
				s.EXPECT().VerifyOTP(gomock.Any(), "08031234567", "123456").Return(&domain.User{ID: 3, PhoneVerified: true}, nil)
				s.EXPECT().GenerateToken(3).Return("t", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Verify OTP with wrong code",
			call: func(h *AuthHandler) http.HandlerFunc { return h.VerifyOTP },
			body: `{"phone":"08031234567","otp":"000000"}`,
			prepareMock: func(s *MockService) {
				s.EXPECT().VerifyOTP(gomock.Any(), "08031234567", "000000").Return(nil, authservice.ErrInvalidOTP)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Verify OTP with short code",
			call:         func(h *AuthHandler) http.HandlerFunc { return h.VerifyOTP },
			body:         `{"phone":"08031234567","otp":"12"}`,
			prepareMock:  func(s *MockService) {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Resend OTP",
			call: func(h *AuthHandler) http.HandlerFunc { return h.ResendOTP },
			body: `{"phone":"08031234567"}`,
			prepareMock: func(s *MockService) {
				s.EXPECT().ResendOTP(gomock.Any(), "08031234567").Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Forgot password for unknown phone",
			call: func(h *AuthHandler) http.HandlerFunc { return h.ForgotPassword },
			body: `{"phone":"08031234567"}`,
			prepareMock: func(s *MockService) {
				s.EXPECT().ForgotPassword(gomock.Any(), "08031234567").Return(authservice.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Reset password",
			call: func(h *AuthHandler) http.HandlerFunc { return h.ResetPassword },
			body: `{"phone":"08031234567","otp":"123456","new_password":"N3w!password"}`,
			prepareMock: func(s *MockService) {
				s.EXPECT().ResetPassword(gomock.Any(), "08031234567", "123456", "N3w!password").Return(nil)
			},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			rr := httptest.NewRecorder()
			tt.call(handler)(rr, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(tt.body))))
			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestMeHandler(t *testing.T) {
	t.Run("Profile", func(t *testing.T) {
		handler, service := NewMock(t)
		service.EXPECT().GetProfile(gomock.Any(), 7).Return(&domain.User{ID: 7, Name: "Ada Obi", CurrentLevel: 2}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req = req.WithContext(context.WithValue(req.Context(), pkgauth.UserIDKey, 7))
		rr := httptest.NewRecorder()
		handler.Me(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp dto.UserDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "Growth", resp.LevelName)
		assert.Equal(t, []string{}, resp.Badges)
	})

	t.Run("Missing user in context", func(t *testing.T) {
		handler, _ := NewMock(t)
		rr := httptest.NewRecorder()
		handler.Me(rr, httptest.NewRequest(http.MethodGet, "/api/users/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUpdateProfileHandler(t *testing.T) {
	name := "Ada Okafor"
	email := "ada.okafor@example.com"

	tests := []struct {
		name          string
		body          string
		prepareMock   func(s *MockService)
		expectedCode  int
		expectedError string
	}{
		{
			name: "Name and email changed",
			body: `{"name":"Ada Okafor","email":"ada.okafor@example.com"}`,
			prepareMock: func(s *MockService) {
				s.EXPECT().UpdateProfile(gomock.Any(), 7, domain.ProfileUpdate{Name: &name, Email: &email}).
					Return(&domain.User{ID: 7, Name: name, Email: email}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Only name changed",
			body: `{"name":"Ada Okafor"}`,
			prepareMock: func(s *MockService) {
				s.EXPECT().UpdateProfile(gomock.Any(), 7, domain.ProfileUpdate{Name: &name}).
					Return(&domain.User{ID: 7, Name: name, Email: "ada@example.com"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Empty body",
			body:          `{}`,
			prepareMock:   func(s *MockService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: msgNothingToUpdate,
		},
		{
			name:          "Invalid email",
			body:          `{"email":"not-an-email"}`,
			prepareMock:   func(s *MockService) {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid field: Email",
		},
		{
			name: "Email already in use",
			body: `{"email":"ada.okafor@example.com"}`,
			prepareMock: func(s *MockService) {
				s.EXPECT().UpdateProfile(gomock.Any(), 7, gomock.Any()).Return(nil, authservice.ErrUserExists)
			},
			expectedCode:  http.StatusConflict,
			expectedError: authservice.ErrUserExists.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			req := httptest.NewRequest(http.MethodPut, "/api/users/me", bytes.NewBufferString(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), pkgauth.UserIDKey, 7))
			rr := httptest.NewRecorder()
			handler.UpdateProfile(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}
			var resp dto.UserDTO
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, name, resp.Name)
		})
	}

	t.Run("Missing user in context", func(t *testing.T) {
		handler, _ := NewMock(t)
		rr := httptest.NewRecorder()
		handler.UpdateProfile(rr, httptest.NewRequest(http.MethodPut, "/api/users/me", bytes.NewBufferString(`{"name":"Ada Okafor"}`)))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestLogoutHandler(t *testing.T) {
	expiresAt := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	claims := &pkgauth.Claims{UserID: 7}
	claims.Id = "token-id"
	claims.ExpiresAt = expiresAt.Unix()

	tests := []struct {
		name         string
		claims       *pkgauth.Claims
		prepareMock  func(s *MockService)
		expectedCode int
	}{
		{
			name:   "Token revoked",
			claims: claims,
			prepareMock: func(s *MockService) {
				s.EXPECT().Logout(gomock.Any(), "token-id", expiresAt).Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Token without id",
			claims:       &pkgauth.Claims{UserID: 7},
			prepareMock:  func(s *MockService) {},
			expectedCode: http.StatusOK,
		},
		{
			name:   "Store unavailable",
			claims: claims,
			prepareMock: func(s *MockService) {
				s.EXPECT().Logout(gomock.Any(), "token-id", expiresAt).Return(errors.New("redis down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "No claims",
			prepareMock:  func(s *MockService) {},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
			if tt.claims != nil {
				req = req.WithContext(context.WithValue(req.Context(), pkgauth.ClaimsKey, tt.claims))
			}
			rr := httptest.NewRecorder()
			handler.Logout(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.MessageResponseDTO
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, "Logged out successfully", resp.Message)
			}
		})
	}
}
