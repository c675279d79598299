package company_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/invoicer/internal/company"
	"github.com/MrJamesThe3rd/invoicer/internal/event"
	"github.com/MrJamesThe3rd/invoicer/internal/validation"
)

func TestService_Setup(t *testing.T) {
	type testCase struct {
		name      string
		params    company.SetupParams
		setupMock func(r *company.MockRepository, p *company.MockPublisher)
		wantErr   error
		check     func(t *testing.T, p *company.Profile)
	}

	tests := []testCase{
		{
			name:   "AppliesDefaults",
			params: company.SetupParams{Name: "Acme", InvoiceNumberPrefix: "INV-"},
			setupMock: func(r *company.MockRepository, p *company.MockPublisher) {
				r.EXPECT().GetProfile(gomock.Any()).Return(nil, company.ErrProfileMissing)
				r.EXPECT().
					CreateProfile(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *company.Profile) error {
						p.ID = uuid.New()
						p.Version = 1
						return nil
					})
				p.EXPECT().Publish(gomock.Any(), gomock.AssignableToTypeOf(event.ProfileUpdated{}))
			},
			check: func(t *testing.T, p *company.Profile) {
				assert.Equal(t, int64(1), p.NextInvoiceNumber)
				assert.Equal(t, company.DefaultPaymentTermsDays, p.PaymentTermsDays)
				assert.Equal(t, company.DefaultCurrency, p.Currency)
				assert.NotEqual(t, uuid.Nil, p.ID)
			},
		},
		{
			name:   "KeepsExplicitCounter",
			params: company.SetupParams{Name: "Acme", NextInvoiceNumber: 120, PaymentTermsDays: 14},
			setupMock: func(r *company.MockRepository, p *company.MockPublisher) {
				r.EXPECT().GetProfile(gomock.Any()).Return(nil, company.ErrProfileMissing)
				r.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).Return(nil)
				p.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
			check: func(t *testing.T, p *company.Profile) {
				assert.Equal(t, int64(120), p.NextInvoiceNumber)
				assert.Equal(t, 14, p.PaymentTermsDays)
			},
		},
		{
			name:    "MissingName",
			params:  company.SetupParams{Email: "billing@acme.test"},
			wantErr: validation.ErrInvalid,
		},
		{
			name:   "AlreadyConfigured",
			params: company.SetupParams{Name: "Acme"},
			setupMock: func(r *company.MockRepository, _ *company.MockPublisher) {
				r.EXPECT().GetProfile(gomock.Any()).Return(&company.Profile{Name: "Existing"}, nil)
			},
			wantErr: company.ErrProfileExists,
		},
		{
			name:   "RepoError",
			params: company.SetupParams{Name: "Acme"},
			setupMock: func(r *company.MockRepository, _ *company.MockPublisher) {
				r.EXPECT().GetProfile(gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := company.NewMockRepository(ctrl)
			pub := company.NewMockPublisher(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, pub)
			}

			svc := company.NewService(repo, pub)
			got, err := svc.Setup(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)

				if errors.Is(tt.wantErr, validation.ErrInvalid) || errors.Is(tt.wantErr, company.ErrProfileExists) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.ErrorContains(t, err, tt.wantErr.Error())
				}

				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_Update(t *testing.T) {
	current := func() *company.Profile {
		return &company.Profile{ID: uuid.New(), Name: "Acme", InvoiceNumberPrefix: "INV-", NextInvoiceNumber: 10, Version: 4}
	}

	t.Run("MovesCounterForward", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := company.NewMockRepository(ctrl)
		pub := company.NewMockPublisher(ctrl)

		repo.EXPECT().GetProfile(gomock.Any()).Return(current(), nil)
		repo.EXPECT().
			UpdateProfile(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *company.Profile) error {
				assert.Equal(t, int64(4), p.Version)
				p.Version++
				return nil
			})
		pub.EXPECT().Publish(gomock.Any(), gomock.Any())

		prefix := "F-"

		got, err := company.NewService(repo, pub).Update(context.Background(), company.UpdateParams{
			InvoiceNumberPrefix: &prefix,
			NextInvoiceNumber:   new(int64(50)),
		})
		require.NoError(t, err)

		assert.Equal(t, "F-", got.InvoiceNumberPrefix)
		assert.Equal(t, int64(50), got.NextInvoiceNumber)
		assert.Equal(t, "Acme", got.Name)
		assert.Equal(t, int64(5), got.Version)
	})

	t.Run("RejectsCounterGoingBack", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := company.NewMockRepository(ctrl)

		repo.EXPECT().GetProfile(gomock.Any()).Return(current(), nil)

		_, err := company.NewService(repo, nil).Update(context.Background(), company.UpdateParams{
			NextInvoiceNumber: new(int64(3)),
		})

		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "next_invoice_number", verr.Fields[0].Field)
	})

	t.Run("RejectsBlankName", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := company.NewMockRepository(ctrl)

		repo.EXPECT().GetProfile(gomock.Any()).Return(current(), nil)

		_, err := company.NewService(repo, nil).Update(context.Background(), company.UpdateParams{Name: new("")})
		assert.ErrorIs(t, err, validation.ErrInvalid)
	})

	t.Run("Conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := company.NewMockRepository(ctrl)

		repo.EXPECT().GetProfile(gomock.Any()).Return(current(), nil)
		repo.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).Return(company.ErrConflict)

		_, err := company.NewService(repo, nil).Update(context.Background(), company.UpdateParams{Phone: new("123")})
		assert.ErrorIs(t, err, company.ErrConflict)
	})

	t.Run("Missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := company.NewMockRepository(ctrl)

		repo.EXPECT().GetProfile(gomock.Any()).Return(nil, company.ErrProfileMissing)

		_, err := company.NewService(repo, nil).Update(context.Background(), company.UpdateParams{})
		assert.ErrorIs(t, err, company.ErrProfileMissing)
	})
}

func TestService_Exists(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := company.NewMockRepository(ctrl)

	gomock.InOrder(
		repo.EXPECT().GetProfile(gomock.Any()).Return(nil, company.ErrProfileMissing),
		repo.EXPECT().GetProfile(gomock.Any()).Return(&company.Profile{}, nil),
	)

	svc := company.NewService(repo, nil)

	ok, err := svc.Exists(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Exists(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}
