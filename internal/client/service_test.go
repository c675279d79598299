package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/invoicer/internal/address"
	"github.com/MrJamesThe3rd/invoicer/internal/client"
	"github.com/MrJamesThe3rd/invoicer/internal/validation"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    client.CreateParams
		setupMock func(m *client.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: client.CreateParams{
				Name:    "  Globex  ",
				Email:   "ap@globex.test",
				Address: address.Address{City: "Porto", Country: "PT"},
			},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().
					CreateClient(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *client.Client) error {
						assert.Equal(t, "Globex", c.Name)
						c.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "BlankName",
			params:  client.CreateParams{Name: "   "},
			wantErr: validation.ErrInvalid,
		},
		{
			name:    "BadEmail",
			params:  client.CreateParams{Name: "Globex", Email: "not-an-email"},
			wantErr: validation.ErrInvalid,
		},
		{
			name:   "RepoError",
			params: client.CreateParams{Name: "Globex"},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().CreateClient(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := client.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := client.NewService(repo).Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				if errors.Is(tt.wantErr, validation.ErrInvalid) {
					assert.ErrorIs(t, err, validation.ErrInvalid)
				}

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_Import(t *testing.T) {
	t.Run("AllOrNothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := client.NewMockRepository(ctrl)

		_, err := client.NewService(repo).Import(context.Background(), []client.CreateParams{
			{Name: "Globex"},
			{Name: ""},
		})

		require.ErrorIs(t, err, validation.ErrInvalid)
		assert.ErrorContains(t, err, "row 2")
	})

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := client.NewMockRepository(ctrl)

		repo.EXPECT().
			CreateClients(gomock.Any(), gomock.Len(2)).
			Return(nil)

		got, err := client.NewService(repo).Import(context.Background(), []client.CreateParams{
			{Name: "Globex"},
			{Name: "Initech", Email: "ap@initech.test"},
		})

		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestService_Update(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := client.NewMockRepository(ctrl)

		repo.EXPECT().GetClient(gomock.Any(), id).Return(&client.Client{ID: id, Name: "Old"}, nil)
		repo.EXPECT().UpdateClient(gomock.Any(), gomock.Any()).Return(nil)

		got, err := client.NewService(repo).Update(context.Background(), id, client.CreateParams{Name: "New"})
		require.NoError(t, err)
		assert.Equal(t, "New", got.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := client.NewMockRepository(ctrl)

		repo.EXPECT().GetClient(gomock.Any(), id).Return(nil, client.ErrNotFound)

		_, err := client.NewService(repo).Update(context.Background(), id, client.CreateParams{Name: "New"})
		assert.ErrorIs(t, err, client.ErrNotFound)
	})
}
