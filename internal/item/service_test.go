package item_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/invoicer/internal/item"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
	"github.com/MrJamesThe3rd/invoicer/internal/validation"
)

func TestService_Create(t *testing.T) {
	tests := []struct {
		name      string
		params    item.CreateParams
		setupMock func(m *item.MockRepository)
		wantErr   bool
	}{
		{
			name:   "Success",
			params: item.CreateParams{Name: "Consulting hour", UnitPrice: money.Money(8500)},
			setupMock: func(m *item.MockRepository) {
				m.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:   "FreeItemAllowed",
			params: item.CreateParams{Name: "Setup", UnitPrice: 0},
			setupMock: func(m *item.MockRepository) {
				m.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:    "NegativePrice",
			params:  item.CreateParams{Name: "Refund", UnitPrice: money.Money(-100)},
			wantErr: true,
		},
		{
			name:    "MissingName",
			params:  item.CreateParams{UnitPrice: money.Money(100)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := item.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := item.NewService(repo).Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.ErrorIs(t, err, validation.ErrInvalid)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.params.UnitPrice, got.UnitPrice)
		})
	}
}

func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := item.NewMockRepository(ctrl)

	repo.EXPECT().
		CreateItems(gomock.Any(), gomock.Len(2)).
		DoAndReturn(func(_ context.Context, items []*item.Item) error {
			for _, it := range items {
				it.ID = uuid.New()
			}
			return nil
		})

	got, err := item.NewService(repo).Import(context.Background(), []item.CreateParams{
		{Name: "Widget", UnitPrice: 1250},
		{Name: "Gadget ", Description: " blue ", UnitPrice: 99},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Gadget", got[1].Name)
	assert.Equal(t, "blue", got[1].Description)
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := item.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().GetItem(gomock.Any(), id).Return(&item.Item{ID: id, Name: "Widget", UnitPrice: 100}, nil)
	repo.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(nil)

	got, err := item.NewService(repo).Update(context.Background(), id, item.CreateParams{Name: "Widget", UnitPrice: 150})
	require.NoError(t, err)
	assert.Equal(t, money.Money(150), got.UnitPrice)
}
