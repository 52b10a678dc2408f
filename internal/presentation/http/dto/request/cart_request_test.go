package request

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCartItemRequestAcceptsZeroQuantity(t *testing.T) {
	var req UpdateCartItemRequest
	require.NoError(t, binding.JSON.BindBody([]byte(`{"quantity": 0}`), &req))
	require.NotNil(t, req.Quantity)
	assert.Equal(t, 0, *req.Quantity)
}

func TestUpdateCartItemRequestRequiresQuantity(t *testing.T) {
	var req UpdateCartItemRequest
	assert.Error(t, binding.JSON.BindBody([]byte(`{}`), &req))
}
