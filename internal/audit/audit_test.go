package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_Append(t *testing.T) {
	now := time.Now()

	var h History
	h = h.Append("pending", 1, "", now)
	h = h.Append("confirmed", 2, "checked by ops", now.Add(time.Minute))

	require.Len(t, h, 2)
	assert.Equal(t, "pending", h[0].Status)
	assert.Equal(t, uint(1), h[0].UpdatedBy)
	assert.Equal(t, "confirmed", h[1].Status)
	assert.Equal(t, "checked by ops", h[1].Notes)
}

func TestHistory_Latest(t *testing.T) {
	var h History
	assert.Nil(t, h.Latest())

	h = h.Append("pending", 1, "", time.Now())
	h = h.Append("shipping", 1, "", time.Now())

	latest := h.Latest()
	require.NotNil(t, latest)
	assert.Equal(t, "shipping", latest.Status)
}
