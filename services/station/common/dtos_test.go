package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSample_IsSet(t *testing.T) {
	t.Parallel()

	assert.False(t, Sample{}.IsSet())
	assert.False(t, Sample{Value: math.NaN()}.IsSet())
	assert.True(t, Sample{Value: 1}.IsSet())
	assert.True(t, Sample{Value: 0.5, Fault: true}.IsSet())
}
