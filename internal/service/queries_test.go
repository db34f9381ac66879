package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-tender-aggregator/internal/models"
	"github.com/pribylovaa/go-tender-aggregator/internal/storage"
	"github.com/pribylovaa/go-tender-aggregator/mocks"
)

// TestListTenders_NormalizesOptions - значения по умолчанию, slug категории и лимиты.
func TestListTenders_NormalizesOptions(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	want := models.ListOptions{
		Search:    "software",
		Category:  string(models.CategoryIT),
		SortBy:    models.SortByDeadline,
		SortOrder: models.SortAsc,
		Page:      1,
		Limit:     100,
	}
	filters := models.Filters{Categories: []string{"IT & Digitalisierung"}, Regions: []string{"Berlin"}}

	gomock.InOrder(
		st.EXPECT().ListTenders(gomock.Any(), want).Return(&models.Page{Total: 1, Page: 1, Limit: 100}, nil),
		st.EXPECT().Filters(gomock.Any()).Return(filters, nil),
	)

	svc := New(st, testConfig())
	page, err := svc.ListTenders(context.Background(), models.ListOptions{
		Search:   "  software ",
		Category: "it_digitalisierung",
		Page:     0,
		Limit:    1000,
	})
	require.NoError(t, err)
	require.Equal(t, filters, page.Filters)
	require.EqualValues(t, 1, page.Total)
}

func TestListTenders_DefaultLimitAndDescOrder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	st.EXPECT().ListTenders(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts models.ListOptions) (*models.Page, error) {
			require.EqualValues(t, 20, opts.Limit)
			require.EqualValues(t, 3, opts.Page)
			require.Equal(t, models.SortByEstimatedValue, opts.SortBy)
			require.Equal(t, models.SortDesc, opts.SortOrder)
			return &models.Page{}, nil
		})
	st.EXPECT().Filters(gomock.Any()).Return(models.Filters{}, nil)

	_, err := New(st, testConfig()).ListTenders(context.Background(), models.ListOptions{
		SortBy: models.SortByEstimatedValue, SortOrder: "DESC", Page: 3,
	})
	require.NoError(t, err)
}

// TestListTenders_InvalidArgument - хранилище не вызывается.
func TestListTenders_InvalidArgument(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)
	svc := New(st, testConfig())

	for _, opts := range []models.ListOptions{
		{SortBy: "title"},
		{SortOrder: "sideways"},
		{Status: "archived"},
	} {
		_, err := svc.ListTenders(context.Background(), opts)
		require.ErrorIs(t, err, ErrInvalidArgument, "%+v", opts)
	}
}

func TestListTenders_StorageErrors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)
	svc := New(st, testConfig())

	st.EXPECT().ListTenders(gomock.Any(), gomock.Any()).Return(nil, storage.ErrInvalidArgument)
	_, err := svc.ListTenders(context.Background(), models.ListOptions{})
	require.ErrorIs(t, err, ErrInvalidArgument)

	boom := errors.New("db down")
	st.EXPECT().ListTenders(gomock.Any(), gomock.Any()).Return(nil, boom)
	_, err = svc.ListTenders(context.Background(), models.ListOptions{})
	require.ErrorIs(t, err, boom)

	st.EXPECT().ListTenders(gomock.Any(), gomock.Any()).Return(&models.Page{}, nil)
	st.EXPECT().Filters(gomock.Any()).Return(models.Filters{}, boom)
	_, err = svc.ListTenders(context.Background(), models.ListOptions{})
	require.ErrorIs(t, err, boom)
}

func TestTenderByID(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)
	svc := New(st, testConfig())

	_, err := svc.TenderByID(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, ErrInvalidArgument)

	missing := uuid.New()
	st.EXPECT().TenderByID(gomock.Any(), missing).Return(nil, storage.ErrNotFound)
	_, err = svc.TenderByID(context.Background(), missing.String())
	require.ErrorIs(t, err, ErrNotFound)

	id := uuid.New()
	st.EXPECT().TenderByID(gomock.Any(), id).Return(&models.Tender{ID: id, TenderURL: "https://x/1"}, nil)
	got, err := svc.TenderByID(context.Background(), " "+id.String()+" ")
	require.NoError(t, err)
	require.Equal(t, "https://x/1", got.TenderURL)
}
