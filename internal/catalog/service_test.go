package catalog

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testID = "645c5ee39f04857283b34613"

func testBook() Book {
	return Book{
		ID:          testID,
		Title:       "Dune",
		Author:      "Herbert",
		Description: "Desert planet",
		Price:       15.0,
		Stock:       3,
		Sales:       100,
	}
}

func newTestService(t *testing.T) (*Service, *MockStore) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockStore := NewMockStore(ctrl)
	return NewService(mockStore, DefaultOptions()), mockStore
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid record is inserted and id returned", func(t *testing.T) {
		service, mockStore := newTestService(t)
		mockStore.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(testID, nil)

		id, err := service.Create(ctx, validInput())

		require.NoError(t, err)
		assert.Equal(t, testID, id)
	})

	t.Run("invalid record never reaches the store", func(t *testing.T) {
		service, _ := newTestService(t)

		in := validInput()
		in.Price = 0
		_, err := service.Create(ctx, in)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "price", verr.Violations[0].Field)
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id never reaches the store", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.Get(ctx, "invalid_id")

		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("well-formed missing id yields not found", func(t *testing.T) {
		service, mockStore := newTestService(t)
		mockStore.EXPECT().FindByID(gomock.Any(), testID).Return(Book{}, ErrNotFound)

		_, err := service.Get(ctx, testID)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("success", func(t *testing.T) {
		service, mockStore := newTestService(t)
		mockStore.EXPECT().FindByID(gomock.Any(), testID).Return(testBook(), nil)

		book, err := service.Get(ctx, testID)

		require.NoError(t, err)
		assert.Equal(t, testBook(), book)
	})
}

func TestService_List(t *testing.T) {
	service, mockStore := newTestService(t)
	mockStore.EXPECT().Search(gomock.Any(), SearchFilters{}).Return([]Book{testBook()}, nil)

	books, err := service.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id never reaches the store", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.Update(ctx, "x", Patch{})

		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("missing record yields not found", func(t *testing.T) {
		service, mockStore := newTestService(t)
		mockStore.EXPECT().FindByID(gomock.Any(), testID).Return(Book{}, ErrNotFound)

		stock := 5
		_, err := service.Update(ctx, testID, Patch{Stock: &stock})

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty patch returns record unchanged without writing", func(t *testing.T) {
		service, mockStore := newTestService(t)
		mockStore.EXPECT().FindByID(gomock.Any(), testID).Return(testBook(), nil)

		book, err := service.Update(ctx, testID, Patch{})

		require.NoError(t, err)
		assert.Equal(t, testBook(), book)
	})

	t.Run("set semantics replace patched fields only", func(t *testing.T) {
		service, mockStore := newTestService(t)
		stock := 5
		patch := Patch{Stock: &stock}
		updated := testBook()
		updated.Stock = 5

		mockStore.EXPECT().FindByID(gomock.Any(), testID).Return(testBook(), nil)
		mockStore.EXPECT().Update(gomock.Any(), testID, patch).Return(updated, nil)

		book, err := service.Update(ctx, testID, patch)

		require.NoError(t, err)
		assert.Equal(t, 5, book.Stock)
		assert.Equal(t, "Dune", book.Title)
		assert.Equal(t, 15.0, book.Price)
	})

	t.Run("merge violating invariants is rejected before writing", func(t *testing.T) {
		service, mockStore := newTestService(t)
		mockStore.EXPECT().FindByID(gomock.Any(), testID).Return(testBook(), nil)

		price := -1.0
		_, err := service.Update(ctx, testID, Patch{Price: &price})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "price", verr.Violations[0].Field)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id never reaches the store", func(t *testing.T) {
		service, _ := newTestService(t)

		assert.ErrorIs(t, service.Delete(ctx, "nope"), ErrInvalidID)
	})

	t.Run("missing record yields not found", func(t *testing.T) {
		service, mockStore := newTestService(t)
		mockStore.EXPECT().Delete(gomock.Any(), testID).Return(ErrNotFound)

		assert.ErrorIs(t, service.Delete(ctx, testID), ErrNotFound)
	})

	t.Run("success", func(t *testing.T) {
		service, mockStore := newTestService(t)
		mockStore.EXPECT().Delete(gomock.Any(), testID).Return(nil)

		assert.NoError(t, service.Delete(ctx, testID))
	})
}

func TestService_Search(t *testing.T) {
	service, mockStore := newTestService(t)
	min := 10.0
	max := 20.0
	filters := SearchFilters{Title: "dun", MinPrice: &min, MaxPrice: &max}
	mockStore.EXPECT().Search(gomock.Any(), filters).Return([]Book{testBook()}, nil)

	books, err := service.Search(context.Background(), filters)

	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestService_Report(t *testing.T) {
	t.Run("rank field follows configuration", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)
		mockStore := NewMockStore(ctrl)
		service := NewService(mockStore, Options{SalesEnabled: false, RankBy: RankByStock})

		report := Report{TotalBooks: 2}
		mockStore.EXPECT().Aggregate(gomock.Any(), RankByStock).Return(report, nil)

		got, err := service.Report(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, got.TotalBooks)
	})

	t.Run("defaults to ranking by sales", func(t *testing.T) {
		service, mockStore := newTestService(t)
		mockStore.EXPECT().Aggregate(gomock.Any(), RankBySales).Return(Report{}, nil)

		_, err := service.Report(context.Background())

		require.NoError(t, err)
	})
}
