package marcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFpsCounter_Tick(t *testing.T) {
	c := &FpsCounter{}

	for i := 0; i < 59; i++ {
		_, ready := c.Tick(16 * time.Millisecond)
		assert.False(t, ready, "frame %d", i)
	}

	fps, ready := c.Tick(56 * time.Millisecond)
	assert.True(t, ready)
	assert.InDelta(t, 60.0, fps, 1e-9)

	fps, ready = c.Tick(10 * time.Millisecond)
	assert.False(t, ready, "a new window starts after reporting")
	assert.InDelta(t, 60.0, fps, 1e-9, "last value is kept between reports")
}

func TestFpsCounter_SlowFrame(t *testing.T) {
	c := &FpsCounter{}

	fps, ready := c.Tick(2 * time.Second)
	assert.True(t, ready)
	assert.InDelta(t, 0.5, fps, 1e-9)
}
