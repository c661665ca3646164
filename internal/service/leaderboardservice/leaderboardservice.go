package leaderboardservice

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/pg"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leaderboardservice.go -destination=mock_leaderboardservice.go -package=leaderboardservice

type Repo interface {
	Aggregate(ctx context.Context, from, to time.Time) ([]domain.LeaderboardEntry, error)
	Upsert(ctx context.Context, e *domain.LeaderboardEntry) error
	ClearRanks(ctx context.Context, month, year int) error
	ListTop(ctx context.Context, month, year, limit int) ([]domain.LeaderboardEntry, error)
	FindByUser(ctx context.Context, userID, month, year int) (*domain.LeaderboardEntry, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

var (
	ErrInvalidPeriod = errors.New("invalid leaderboard period")
	ErrUserNotFound  = errors.New("user not found")
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type Service struct {
	repo      Repo
	userRepo  UserRepo
	txManager pg.TXManager
	now       func() time.Time
}

func New(repo Repo, userRepo UserRepo, txManager pg.TXManager) *Service {
	return &Service{
		repo:      repo,
		userRepo:  userRepo,
		txManager: txManager,
		now:       time.Now,
	}
}

// Recompute rebuilds the ranking of one calendar month: commission earnings
// first, then referrals made, then the older account.
func (s *Service) Recompute(ctx context.Context, month, year int) error {
	from, to, err := period(month, year)
	if err != nil {
		return err
	}

	entries, err := s.repo.Aggregate(ctx, from, to)
	if err != nil {
		return err
	}
	Rank(entries)

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.repo.ClearRanks(ctx, month, year); err != nil {
			return err
		}
		for i := range entries {
			entries[i].Month = month
			entries[i].Year = year
			if err := s.repo.Upsert(ctx, &entries[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		zap.L().Error("failed to recompute leaderboard", zap.Int("month", month), zap.Int("year", year), zap.Error(err))
		return err
	}

	zap.L().Info("leaderboard recomputed", zap.Int("month", month), zap.Int("year", year), zap.Int("entries", len(entries)))
	return nil
}

// Rank sorts entries in place and numbers them from 1.
func Rank(entries []domain.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if c := a.TotalEarned.Cmp(b.TotalEarned); c != 0 {
			return c > 0
		}
		if a.ReferralsCount != b.ReferralsCount {
			return a.ReferralsCount > b.ReferralsCount
		}
		return a.UserID < b.UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

// GetLeaderboard returns the top of a month's ranking. A zero month or year
// means the current one.
func (s *Service) GetLeaderboard(ctx context.Context, month, year, limit int) ([]domain.LeaderboardEntry, error) {
	month, year = s.Period(month, year)
	if _, _, err := period(month, year); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return s.repo.ListTop(ctx, month, year, limit)
}

func (s *Service) GetBadges(ctx context.Context, userID int) (*domain.Achievements, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	month, year := s.Period(0, 0)
	entry, err := s.repo.FindByUser(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	badges := user.Badges
	if badges == nil {
		badges = []string{}
	}
	achievements := &domain.Achievements{
		UserID:    user.ID,
		Badges:    badges,
		Level:     user.CurrentLevel,
		LevelName: domain.LevelName(user.CurrentLevel),
	}
	if entry != nil {
		achievements.Rank = entry.Rank
	}
	return achievements, nil
}

// Period fills a zero month or year with the current one.
func (s *Service) Period(month, year int) (int, int) {
	now := s.now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	return month, year
}

func period(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 || year < 2000 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d/%d", ErrInvalidPeriod, month, year)
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0), nil
}
