package service

import (
	"context"
	"testing"

	"github.com/restopos/backoffice/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMenuItemRejectsNonPositivePrice(t *testing.T) {
	svc := NewMenuItemService(newStubMenuRepo(), newStubCategoryRepo())
	ctx, _ := adminCtx()

	for _, price := range []float64{0, -3.50} {
		_, err := svc.CreateMenuItem(ctx, &CreateMenuItemInput{Name: "Coffee", Price: price})
		assert.ErrorIs(t, err, apperror.ErrInvalidPrice)
	}

	item, err := svc.CreateMenuItem(ctx, &CreateMenuItemInput{Name: "Coffee", Price: 3.50})
	require.NoError(t, err)
	assert.Equal(t, int64(350), item.Price)
}

func TestUpdateMenuItemRejectsNonPositivePrice(t *testing.T) {
	svc := NewMenuItemService(newStubMenuRepo(), newStubCategoryRepo())
	ctx, _ := adminCtx()

	item, err := svc.CreateMenuItem(ctx, &CreateMenuItemInput{Name: "Coffee", Price: 3.50})
	require.NoError(t, err)

	zero := 0.0
	_, err = svc.UpdateMenuItem(ctx, item.ID, &UpdateMenuItemInput{Price: &zero})
	assert.ErrorIs(t, err, apperror.ErrInvalidPrice)

	raised := 4.25
	updated, err := svc.UpdateMenuItem(ctx, item.ID, &UpdateMenuItemInput{Price: &raised})
	require.NoError(t, err)
	assert.Equal(t, int64(425), updated.Price)
}

func TestCreateMenuItemIsAdminOnly(t *testing.T) {
	svc := NewMenuItemService(newStubMenuRepo(), newStubCategoryRepo())

	ctx, _ := cashierCtx("jane")
	_, err := svc.CreateMenuItem(ctx, &CreateMenuItemInput{Name: "Coffee", Price: 3.50})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = svc.CreateMenuItem(context.Background(), &CreateMenuItemInput{Name: "Coffee", Price: 3.50})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
