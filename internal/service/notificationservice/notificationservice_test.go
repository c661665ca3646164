package notificationservice

import (
	"context"
	"errors"
	"testing"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	return New(repo), repo
}

func TestNotify(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(repo *MockRepo)
		wantErr   bool
	}{
		{
			name: "Success",
			mockSetup: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
						assert.Equal(t, 7, n.UserID)
						assert.Equal(t, domain.NotificationReferral, n.Type)
						assert.Equal(t, "New referral", n.Title)
						n.ID = 1
						return n, nil
					})
			},
		},
		{
			name: "Repository error",
			mockSetup: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := NewMock(t)
			tt.mockSetup(repo)

			err := service.Notify(context.Background(), 7, domain.NotificationReferral, "New referral", "Someone joined your network")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestList(t *testing.T) {
	service, repo := NewMock(t)
	expected := []domain.Notification{{ID: 2, UserID: 7}, {ID: 1, UserID: 7}}

	repo.EXPECT().ListByUser(gomock.Any(), 7, 10, 10).Return(expected, nil)
	repo.EXPECT().CountUnread(gomock.Any(), 7).Return(1, nil)

	notifications, unread, err := service.List(context.Background(), 7, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, expected, notifications)
	assert.Equal(t, 1, unread)
}

func TestList_Error(t *testing.T) {
	service, repo := NewMock(t)
	repo.EXPECT().ListByUser(gomock.Any(), 7, DefaultPageSize, 0).Return(nil, errors.New("db error"))

	_, _, err := service.List(context.Background(), 7, 0, 0)
	assert.Error(t, err)
}

func TestMarkRead(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(repo *MockRepo)
		wantErr   error
	}{
		{
			name: "Marked",
			mockSetup: func(repo *MockRepo) {
				repo.EXPECT().MarkRead(gomock.Any(), 7, 3).Return(true, nil)
			},
		},
		{
			name: "Foreign or missing notification",
			mockSetup: func(repo *MockRepo) {
				repo.EXPECT().MarkRead(gomock.Any(), 7, 3).Return(false, nil)
			},
			wantErr: ErrNotificationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := NewMock(t)
			tt.mockSetup(repo)

			err := service.MarkRead(context.Background(), 7, 3)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPage(t *testing.T) {
	tests := []struct {
		page, size        int
		wantLimit, wantOf int
	}{
		{page: 1, size: 10, wantLimit: 10, wantOf: 0},
		{page: 3, size: 10, wantLimit: 10, wantOf: 20},
		{page: 0, size: 0, wantLimit: DefaultPageSize, wantOf: 0},
		{page: 2, size: 500, wantLimit: MaxPageSize, wantOf: MaxPageSize},
	}
	for _, tt := range tests {
		limit, offset := Page(tt.page, tt.size)
		assert.Equal(t, tt.wantLimit, limit)
		assert.Equal(t, tt.wantOf, offset)
	}
}
