//go:build unit

package queries_test

import (
	"encoding/base64"
	"testing"
	"time"

	"gst-lifecycle/internal/pkg/errs"
	"gst-lifecycle/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterCursor_RoundTrip(t *testing.T) {
	at := time.Date(2025, 3, 14, 12, 0, 0, 123456789, time.UTC)
	id := uuid.New()

	gotTime, gotID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(at, id))

	require.NoError(t, err)
	assert.Equal(t, at.Truncate(time.Microsecond), gotTime)
	assert.Equal(t, id, gotID)
}

func TestDecodeAfterCursor_Invalid(t *testing.T) {
	enc := func(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }

	testCases := map[string]string{
		"empty":          "",
		"not base64":     "***",
		"legacy format":  enc("1700000000-" + uuid.NewString()),
		"missing id":     enc("v1:1700000000"),
		"bad timestamp":  enc("v1:abc-" + uuid.NewString()),
		"bad uuid":       enc("v1:1700000000-not-a-uuid"),
		"future version": enc("v2:1700000000-" + uuid.NewString()),
	}
	for name, cursor := range testCases {
		t.Run(name, func(t *testing.T) {
			_, _, err := queries.DecodeAfterCursor(cursor)
			assert.True(t, errs.Is(err, queries.ErrInvalidCursor), "got %v", err)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(-3))
	assert.Equal(t, 7, queries.ValidateLimit(7))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(10_000))
}
