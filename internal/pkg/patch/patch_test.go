//go:build unit

package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	zero, seven := 0, 7
	assert.Equal(t, 5, Coalesce(nil, 5))
	assert.Equal(t, 0, Coalesce(&zero, 5))
	assert.Equal(t, 7, Coalesce(&seven, 5))
}
