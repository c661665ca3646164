package authservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/pg"
	"github.com/GlebRadaev/elevatex/internal/service/placementservice"
	"github.com/GlebRadaev/elevatex/pkg/auth"
	"github.com/GlebRadaev/elevatex/pkg/otpstore"
	"github.com/GlebRadaev/elevatex/pkg/validate"
	"go.uber.org/zap"
)

//go:generate mockgen -source=authservice.go -destination=mock_authservice.go -package=authservice

type Repo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	FindConflict(ctx context.Context, phone, email, nin string) (*domain.User, error)
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	VerifyPhone(ctx context.Context, userID int) error
	UpdateLastLogin(ctx context.Context, userID int, at time.Time) error
	UpdatePassword(ctx context.Context, userID int, passwordHash string) error
	UpdateProfile(ctx context.Context, userID int, upd domain.ProfileUpdate) (*domain.User, error)
}

type OTPStore interface {
	Save(ctx context.Context, purpose otpstore.Purpose, phone, code string, ttl time.Duration) error
	Verify(ctx context.Context, purpose otpstore.Purpose, phone, code string) (bool, error)
}

type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

type Revoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type Joiner interface {
	Join(ctx context.Context, userID int, inviterCode string) (*domain.PlacementResult, error)
}

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPhoneNotVerified   = errors.New("phone number is not verified")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrUserNotFound       = errors.New("user not found")
)

const (
	TokenTTL         = 24 * time.Hour
	codeAttempts     = 5
	defaultOTPExpiry = 10 * time.Minute
)

type Service struct {
	userRepo    Repo
	otpStore    OTPStore
	smsSender   SMSSender
	joiner      Joiner
	revoker     Revoker
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	otpTTL      time.Duration

	newReferralCode func() (string, error)
	newOTP          func() (string, error)
}

func New(
	repo Repo,
	otpStore OTPStore,
	smsSender SMSSender,
	joiner Joiner,
	revoker Revoker,
	hashService auth.HashServiceInterface,
	jwtService auth.JWTServiceInterface,
	otpTTL time.Duration,
) *Service {
	if otpTTL <= 0 {
		otpTTL = defaultOTPExpiry
	}
	return &Service{
		userRepo:        repo,
		otpStore:        otpStore,
		smsSender:       smsSender,
		joiner:          joiner,
		revoker:         revoker,
		hashService:     hashService,
		jwtService:      jwtService,
		otpTTL:          otpTTL,
		newReferralCode: validate.NewReferralCode,
		newOTP:          otpstore.NewCode,
	}
}

// Signup creates the account, sends the phone verification code and places
// the user in the referral graph. An inviter code that does not resolve to a
// user rejects the signup before anything is written. A placement that fails
// after the account exists does not fail the signup; the reconciler retries it
// with the same inviter.
func (s *Service) Signup(ctx context.Context, reg domain.Registration) (*domain.User, *domain.PlacementResult, error) {
	existing, err := s.userRepo.FindConflict(ctx, reg.Phone, reg.Email, reg.NIN)
	if err != nil {
		zap.L().Error("can't check existing user", zap.Error(err))
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrUserExists, conflictField(existing, reg))
	}

	inviter, err := s.findInviter(ctx, reg.ReferralCode)
	if err != nil {
		return nil, nil, err
	}

	hashedPassword, err := s.hashService.HashPassword(reg.Password)
	if err != nil {
		zap.L().Error("can't hash password", zap.Error(err))
		return nil, nil, err
	}

	user, err := s.create(ctx, &domain.User{
		Name:         reg.Name,
		Phone:        reg.Phone,
		Email:        reg.Email,
		NIN:          reg.NIN,
		PasswordHash: hashedPassword,
		InvitedBy:    inviter,
	})
	if err != nil {
		return nil, nil, err
	}
	zap.L().Info("user registered", zap.Int("user_id", user.ID))

	if err := s.sendOTP(ctx, otpstore.PurposeSignup, user.Phone); err != nil {
		zap.L().Warn("failed to send signup otp", zap.Int("user_id", user.ID), zap.Error(err))
	}

	placement, err := s.joiner.Join(ctx, user.ID, reg.ReferralCode)
	if err != nil {
		zap.L().Warn("user left unplaced", zap.Int("user_id", user.ID), zap.Error(err))
		return user, nil, nil
	}
	return user, placement, nil
}

// findInviter resolves the signup referral code. An empty code yields no inviter.
func (s *Service) findInviter(ctx context.Context, code string) (*int, error) {
	code = validate.NormalizeReferralCode(code)
	if code == "" {
		return nil, nil
	}
	if !validate.IsReferralCode(code) {
		return nil, placementservice.ErrInvalidReferralCode
	}
	inviter, err := s.userRepo.FindByReferralCode(ctx, code)
	if err != nil {
		zap.L().Error("can't find inviter", zap.Error(err))
		return nil, err
	}
	if inviter == nil {
		return nil, placementservice.ErrInvalidReferralCode
	}
	return &inviter.ID, nil
}

// create inserts the user, drawing a new referral code when the drawn one is taken.
func (s *Service) create(ctx context.Context, user *domain.User) (*domain.User, error) {
	for attempt := 1; ; attempt++ {
		code, err := s.newReferralCode()
		if err != nil {
			return nil, err
		}
		user.ReferralCode = code

		created, err := s.userRepo.Create(ctx, user)
		if err == nil {
			return created, nil
		}
		if !pg.IsUniqueViolation(err) {
			zap.L().Error("can't create user", zap.Error(err))
			return nil, err
		}

		existing, findErr := s.userRepo.FindConflict(ctx, user.Phone, user.Email, user.NIN)
		if findErr != nil {
			return nil, findErr
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: %s", ErrUserExists, conflictField(existing, domain.Registration{
				Phone: user.Phone, Email: user.Email, NIN: user.NIN,
			}))
		}
		if attempt == codeAttempts {
			return nil, validate.ErrCodeGeneration
		}
	}
}

func conflictField(existing *domain.User, reg domain.Registration) string {
	switch {
	case existing.Phone == reg.Phone:
		return "phone"
	case existing.Email == reg.Email:
		return "email"
	default:
		return "NIN"
	}
}

func (s *Service) VerifyOTP(ctx context.Context, phone, code string) (*domain.User, error) {
	user, err := s.checkOTP(ctx, otpstore.PurposeSignup, phone, code)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.VerifyPhone(ctx, user.ID); err != nil {
		return nil, err
	}
	user.PhoneVerified = true
	s.touch(ctx, user)
	zap.L().Info("phone verified", zap.Int("user_id", user.ID))
	return user, nil
}

func (s *Service) ResendOTP(ctx context.Context, phone string) error {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.sendOTP(ctx, otpstore.PurposeSignup, phone)
}

func (s *Service) Authenticate(ctx context.Context, phone, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil || user == nil {
		zap.L().Info("invalid credentials", zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Info("invalid credentials", zap.Int("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}
	if !user.PhoneVerified {
		return nil, ErrPhoneNotVerified
	}
	s.touch(ctx, user)
	zap.L().Info("user successfully authenticated", zap.Int("user_id", user.ID))
	return user, nil
}

func (s *Service) ForgotPassword(ctx context.Context, phone string) error {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.sendOTP(ctx, otpstore.PurposeReset, phone)
}

func (s *Service) ResetPassword(ctx context.Context, phone, code, newPassword string) error {
	user, err := s.checkOTP(ctx, otpstore.PurposeReset, phone, code)
	if err != nil {
		return err
	}
	hashedPassword, err := s.hashService.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}
	zap.L().Info("password reset", zap.Int("user_id", user.ID))
	return nil
}

func (s *Service) GenerateToken(userID int) (string, error) {
	token, err := s.jwtService.GenerateJWT(userID, time.Now().Add(TokenTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	return token, nil
}

func (s *Service) GetProfile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile changes the user's name or email. An email held by another
// account is rejected with ErrUserExists.
func (s *Service) UpdateProfile(ctx context.Context, userID int, upd domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.UpdateProfile(ctx, userID, upd)
	if pg.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: email", ErrUserExists)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	zap.L().Info("profile updated", zap.Int("user_id", userID))
	return user, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *Service) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if err := s.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
		zap.L().Error("can't revoke token", zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) checkOTP(ctx context.Context, purpose otpstore.Purpose, phone, code string) (*domain.User, error) {
	ok, err := s.otpStore.Verify(ctx, purpose, phone, code)
	if errors.Is(err, otpstore.ErrTooManyAttempts) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOTP, err)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidOTP
	}
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *Service) sendOTP(ctx context.Context, purpose otpstore.Purpose, phone string) error {
	code, err := s.newOTP()
	if err != nil {
		return err
	}
	if err := s.otpStore.Save(ctx, purpose, phone, code, s.otpTTL); err != nil {
		zap.L().Error("can't store otp", zap.String("purpose", string(purpose)), zap.Error(err))
		return err
	}
	body := fmt.Sprintf("Your ElevateX code is %s. It expires in %d minutes.", code, int(s.otpTTL.Minutes()))
	return s.smsSender.Send(ctx, phone, body)
}

func (s *Service) touch(ctx context.Context, user *domain.User) {
	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		zap.L().Warn("can't update last login", zap.Int("user_id", user.ID), zap.Error(err))
		return
	}
	user.LastLogin = &now
}
