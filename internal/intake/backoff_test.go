package intake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffCapsAtMax(t *testing.T) {
	b := newBackoff()
	assert.Equal(t, 5*time.Second, b.Next())
	assert.Equal(t, 10*time.Second, b.Next())
	assert.Equal(t, 15*time.Second, b.Next())
	assert.Equal(t, 15*time.Second, b.Next())
}

func TestBackoffResets(t *testing.T) {
	b := newBackoff()
	b.Next()
	b.Next()
	b.Reset()
	assert.Equal(t, 5*time.Second, b.Next())
}
