package placementservice

import (
	"context"
	"errors"
	"testing"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/pg"
	"github.com/GlebRadaev/elevatex/pkg/validate"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

type mocks struct {
	users     *MockUserRepo
	chains    *MockChainRepo
	referrals *MockReferralRepo
	tx        *pg.MockTXManager
}

func NewMock(t *testing.T, opts Options) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		users:     NewMockUserRepo(ctrl),
		chains:    NewMockChainRepo(ctrl),
		referrals: NewMockReferralRepo(ctrl),
		tx:        pg.NewMockTXManager(ctrl),
	}
	m.tx.EXPECT().Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error { return fn(ctx) }).
		AnyTimes()
	return New(m.users, m.chains, m.referrals, m.tx, opts), m
}

func defaultOptions() Options {
	return Options{FanOut: 2, TotalRequired: 31, MaxAttempts: 3}
}

func (m *mocks) expectUnplaced(userID int) {
	m.chains.EXPECT().LockPlacement(gomock.Any(), userID).Return(nil)
	m.referrals.EXPECT().FindByChild(gomock.Any(), userID).Return(nil, nil)
	m.chains.EXPECT().FindByOrigin(gomock.Any(), userID).Return(nil, nil)
}

func mustCode(t *testing.T) string {
	code, err := validate.NewReferralCode()
	require.NoError(t, err)
	return code
}

func TestPlace_OpensFirstChain(t *testing.T) {
	service, m := NewMock(t, defaultOptions())

	m.expectUnplaced(1)
	m.chains.EXPECT().FindOpen(gomock.Any(), 31, 1).Return(nil, nil)
	m.chains.EXPECT().LockCounter(gomock.Any()).Return(nil)
	m.chains.EXPECT().FindOpen(gomock.Any(), 31, 1).Return(nil, nil)
	m.chains.EXPECT().Create(gomock.Any(), 1).Return(&domain.Chain{ID: 1, OriginUserID: 1, MemberCount: 1}, nil)

	result, err := service.Place(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, &domain.PlacementResult{
		UserID:          1,
		ChainID:         1,
		PositionInChain: 1,
		PlacementType:   domain.PlacementSystem,
	}, result)
}

func TestPlace_SystemPicksFirstMemberWithRoom(t *testing.T) {
	service, m := NewMock(t, defaultOptions())

	m.expectUnplaced(9)
	m.chains.EXPECT().FindOpen(gomock.Any(), 31, 1).Return([]domain.Chain{{ID: 4, OriginUserID: 1, MemberCount: 4}}, nil)
	m.chains.EXPECT().Lock(gomock.Any(), 4).Return(nil)
	m.chains.EXPECT().FindByID(gomock.Any(), 4).Return(&domain.Chain{ID: 4, OriginUserID: 1, MemberCount: 4}, nil)
	m.referrals.EXPECT().ListByChain(gomock.Any(), 4).Return([]domain.Referral{
		{ParentID: 1, ChildID: 2, PositionInChain: 2},
		{ParentID: 1, ChildID: 3, PositionInChain: 3},
		{ParentID: 2, ChildID: 5, PositionInChain: 4},
	}, nil)
	m.referrals.EXPECT().ChildCounts(gomock.Any(), 4).Return(map[int]int{1: 2, 2: 1}, nil)
	m.chains.EXPECT().IncrementMembers(gomock.Any(), 4).Return(5, nil)
	m.referrals.EXPECT().Create(gomock.Any(), &domain.Referral{
		ParentID:        2,
		ChildID:         9,
		Level:           1,
		PlacementType:   domain.PlacementSystem,
		ChainID:         4,
		PositionInChain: 5,
	}).DoAndReturn(func(_ context.Context, ref *domain.Referral) (*domain.Referral, error) {
		ref.ID = 77
		ref.IsActive = true
		return ref, nil
	})

	result, err := service.Place(context.Background(), 9, "")
	require.NoError(t, err)
	assert.Equal(t, 2, result.ParentID)
	assert.Equal(t, 5, result.PositionInChain)
	assert.Equal(t, domain.PlacementSystem, result.PlacementType)
	require.NotNil(t, result.Edge)
	assert.Equal(t, 77, result.Edge.ID)
}

func TestPlace_Direct(t *testing.T) {
	service, m := NewMock(t, defaultOptions())
	code := mustCode(t)

	m.expectUnplaced(10)
	m.users.EXPECT().FindByReferralCode(gomock.Any(), code).Return(&domain.User{ID: 3, ReferralCode: code}, nil)
	m.referrals.EXPECT().FindByChild(gomock.Any(), 3).Return(&domain.Referral{ChildID: 3, ChainID: 4}, nil)
	m.chains.EXPECT().Lock(gomock.Any(), 4).Return(nil)
	m.chains.EXPECT().FindByID(gomock.Any(), 4).Return(&domain.Chain{ID: 4, MemberCount: 6}, nil)
	m.referrals.EXPECT().CountDirectChildren(gomock.Any(), 3).Return(1, nil)
	m.chains.EXPECT().IncrementMembers(gomock.Any(), 4).Return(7, nil)
	m.referrals.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ref *domain.Referral) (*domain.Referral, error) {
			assert.Equal(t, domain.PlacementDirect, ref.PlacementType)
			assert.Equal(t, 3, ref.ParentID)
			assert.Equal(t, 1, ref.Level)
			ref.ID = 12
			return ref, nil
		})

	result, err := service.Place(context.Background(), 10, " "+code+" ")
	require.NoError(t, err)
	assert.Equal(t, domain.PlacementDirect, result.PlacementType)
	assert.Equal(t, 3, result.ParentID)
	assert.Equal(t, 7, result.PositionInChain)
}

func TestPlace_DirectUnderUnactivatedInviter(t *testing.T) {
	service, m := NewMock(t, defaultOptions())
	code := mustCode(t)

	m.expectUnplaced(11)
	m.users.EXPECT().FindByReferralCode(gomock.Any(), code).
		Return(&domain.User{ID: 3, ReferralCode: code, IsActivated: false}, nil)
	m.referrals.EXPECT().FindByChild(gomock.Any(), 3).Return(&domain.Referral{ChildID: 3, ChainID: 4}, nil)
	m.chains.EXPECT().Lock(gomock.Any(), 4).Return(nil)
	m.chains.EXPECT().FindByID(gomock.Any(), 4).Return(&domain.Chain{ID: 4, MemberCount: 6}, nil)
	m.referrals.EXPECT().CountDirectChildren(gomock.Any(), 3).Return(0, nil)
	m.chains.EXPECT().IncrementMembers(gomock.Any(), 4).Return(7, nil)
	m.referrals.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ref *domain.Referral) (*domain.Referral, error) {
			ref.ID = 13
			return ref, nil
		})

	result, err := service.Place(context.Background(), 11, code)
	require.NoError(t, err)
	assert.Equal(t, domain.PlacementDirect, result.PlacementType)
	assert.Equal(t, 3, result.ParentID)
}

func TestPlace_DirectUnderChainOrigin(t *testing.T) {
	service, m := NewMock(t, defaultOptions())
	code := mustCode(t)

	m.expectUnplaced(10)
	m.users.EXPECT().FindByReferralCode(gomock.Any(), code).Return(&domain.User{ID: 1}, nil)
	m.referrals.EXPECT().FindByChild(gomock.Any(), 1).Return(nil, nil)
	m.chains.EXPECT().FindByOrigin(gomock.Any(), 1).Return(&domain.Chain{ID: 2, OriginUserID: 1}, nil)
	m.chains.EXPECT().Lock(gomock.Any(), 2).Return(nil)
	m.chains.EXPECT().FindByID(gomock.Any(), 2).Return(&domain.Chain{ID: 2, MemberCount: 1}, nil)
	m.referrals.EXPECT().CountDirectChildren(gomock.Any(), 1).Return(0, nil)
	m.chains.EXPECT().IncrementMembers(gomock.Any(), 2).Return(2, nil)
	m.referrals.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ref *domain.Referral) (*domain.Referral, error) { return ref, nil })

	result, err := service.Place(context.Background(), 10, code)
	require.NoError(t, err)
	assert.Equal(t, domain.PlacementDirect, result.PlacementType)
	assert.Equal(t, 2, result.PositionInChain)
}

func TestPlace_DirectFallsBackWhenInviterFull(t *testing.T) {
	service, m := NewMock(t, defaultOptions())
	code := mustCode(t)

	m.expectUnplaced(10)
	m.users.EXPECT().FindByReferralCode(gomock.Any(), code).Return(&domain.User{ID: 3}, nil)
	m.referrals.EXPECT().FindByChild(gomock.Any(), 3).Return(&domain.Referral{ChildID: 3, ChainID: 4}, nil)
	m.chains.EXPECT().Lock(gomock.Any(), 4).Return(nil)
	m.chains.EXPECT().FindByID(gomock.Any(), 4).Return(&domain.Chain{ID: 4, MemberCount: 6}, nil)
	m.referrals.EXPECT().CountDirectChildren(gomock.Any(), 3).Return(2, nil)

	m.expectUnplaced(10)
	m.chains.EXPECT().FindOpen(gomock.Any(), 31, 1).Return([]domain.Chain{{ID: 5}}, nil)
	m.chains.EXPECT().Lock(gomock.Any(), 5).Return(nil)
	m.chains.EXPECT().FindByID(gomock.Any(), 5).Return(&domain.Chain{ID: 5, OriginUserID: 20, MemberCount: 1}, nil)
	m.referrals.EXPECT().ListByChain(gomock.Any(), 5).Return(nil, nil)
	m.referrals.EXPECT().ChildCounts(gomock.Any(), 5).Return(map[int]int{}, nil)
	m.chains.EXPECT().IncrementMembers(gomock.Any(), 5).Return(2, nil)
	m.referrals.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ref *domain.Referral) (*domain.Referral, error) { return ref, nil })

	result, err := service.Place(context.Background(), 10, code)
	require.NoError(t, err)
	assert.Equal(t, domain.PlacementSystem, result.PlacementType)
	assert.Equal(t, 20, result.ParentID)
}

func TestPlace_DirectFallsBackWhenChainFull(t *testing.T) {
	service, m := NewMock(t, defaultOptions())
	code := mustCode(t)

	m.expectUnplaced(10)
	m.users.EXPECT().FindByReferralCode(gomock.Any(), code).Return(&domain.User{ID: 3}, nil)
	m.referrals.EXPECT().FindByChild(gomock.Any(), 3).Return(&domain.Referral{ChildID: 3, ChainID: 4}, nil)
	m.chains.EXPECT().Lock(gomock.Any(), 4).Return(nil)
	m.chains.EXPECT().FindByID(gomock.Any(), 4).Return(&domain.Chain{ID: 4, MemberCount: 31}, nil)

	m.expectUnplaced(10)
	m.chains.EXPECT().FindOpen(gomock.Any(), 31, 1).Return(nil, nil)
	m.chains.EXPECT().LockCounter(gomock.Any()).Return(nil)
	m.chains.EXPECT().FindOpen(gomock.Any(), 31, 1).Return(nil, nil)
	m.chains.EXPECT().Create(gomock.Any(), 10).Return(&domain.Chain{ID: 6, OriginUserID: 10, MemberCount: 1}, nil)

	result, err := service.Place(context.Background(), 10, code)
	require.NoError(t, err)
	assert.Equal(t, 6, result.ChainID)
	assert.Equal(t, 1, result.PositionInChain)
	assert.Nil(t, result.Edge)
}

func TestPlace_Errors(t *testing.T) {
	code := mustCode(t)

	tests := []struct {
		name          string
		code          string
		prepareMock   func(m *mocks)
		expectedError error
	}{
		{
			name: "Malformed code",
			code: "ELX123",
			prepareMock: func(m *mocks) {
				m.expectUnplaced(10)
			},
			expectedError: ErrInvalidReferralCode,
		},
		{
			name: "Unknown code",
			code: code,
			prepareMock: func(m *mocks) {
				m.expectUnplaced(10)
				m.users.EXPECT().FindByReferralCode(gomock.Any(), code).Return(nil, nil)
			},
			expectedError: ErrInvalidReferralCode,
		},
		{
			name: "Own code",
			code: code,
			prepareMock: func(m *mocks) {
				m.expectUnplaced(10)
				m.users.EXPECT().FindByReferralCode(gomock.Any(), code).Return(&domain.User{ID: 10}, nil)
			},
			expectedError: ErrInvalidReferralCode,
		},
		{
			name: "Already has a parent",
			prepareMock: func(m *mocks) {
				m.chains.EXPECT().LockPlacement(gomock.Any(), 10).Return(nil)
				m.referrals.EXPECT().FindByChild(gomock.Any(), 10).Return(&domain.Referral{ID: 1, ChildID: 10, ChainID: 2}, nil)
			},
			expectedError: ErrDuplicatePlacement,
		},
		{
			name: "Already originates a chain",
			code: code,
			prepareMock: func(m *mocks) {
				m.chains.EXPECT().LockPlacement(gomock.Any(), 10).Return(nil)
				m.referrals.EXPECT().FindByChild(gomock.Any(), 10).Return(nil, nil)
				m.chains.EXPECT().FindByOrigin(gomock.Any(), 10).Return(&domain.Chain{ID: 3, OriginUserID: 10}, nil)
			},
			expectedError: ErrDuplicatePlacement,
		},
		{
			name: "Concurrent chain creation",
			prepareMock: func(m *mocks) {
				m.expectUnplaced(10)
				m.chains.EXPECT().FindOpen(gomock.Any(), 31, 1).Return(nil, nil)
				m.chains.EXPECT().LockCounter(gomock.Any()).Return(nil)
				m.chains.EXPECT().FindOpen(gomock.Any(), 31, 1).Return(nil, nil)
				m.chains.EXPECT().Create(gomock.Any(), 10).Return(nil, &pgconn.PgError{Code: "23505"})
			},
			expectedError: ErrDuplicatePlacement,
		},
		{
			name: "Chain creation fails",
			prepareMock: func(m *mocks) {
				m.expectUnplaced(10)
				m.chains.EXPECT().FindOpen(gomock.Any(), 31, 1).Return(nil, nil)
				m.chains.EXPECT().LockCounter(gomock.Any()).Return(nil)
				m.chains.EXPECT().FindOpen(gomock.Any(), 31, 1).Return(nil, nil)
				m.chains.EXPECT().Create(gomock.Any(), 10).Return(nil, errors.New("disk full"))
			},
			expectedError: ErrChainCapacityExhausted,
		},
		{
			name: "Open chains keep filling up",
			prepareMock: func(m *mocks) {
				for i := 0; i < 3; i++ {
					m.expectUnplaced(10)
					m.chains.EXPECT().FindOpen(gomock.Any(), 31, 1).Return([]domain.Chain{{ID: 4}}, nil)
					m.chains.EXPECT().Lock(gomock.Any(), 4).Return(nil)
					m.chains.EXPECT().FindByID(gomock.Any(), 4).Return(&domain.Chain{ID: 4, MemberCount: 31}, nil)
				}
			},
			expectedError: ErrChainCapacityExhausted,
		},
		{
			name: "Repository failure",
			prepareMock: func(m *mocks) {
				m.chains.EXPECT().LockPlacement(gomock.Any(), 10).Return(errors.New("db down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t, defaultOptions())
			tt.prepareMock(m)

			result, err := service.Place(context.Background(), 10, tt.code)
			assert.Nil(t, result)
			require.Error(t, err)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			}
		})
	}
}
