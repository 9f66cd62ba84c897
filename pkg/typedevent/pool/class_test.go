package pool_test

import (
	"testing"

	"github.com/randalmurphal/typedevent/pkg/typedevent/pool"
	"github.com/stretchr/testify/assert"
)

func TestSelectClass(t *testing.T) {
	tests := []struct {
		name string
		size uintptr
		want pool.Class
	}{
		{"zero", 0, pool.ClassSmall},
		{"one byte", 1, pool.ClassSmall},
		{"just under threshold", pool.Threshold - 1, pool.ClassSmall},
		{"exactly threshold", pool.Threshold, pool.ClassSmall},
		{"just over threshold", pool.Threshold + 1, pool.ClassLarge},
		{"protocol message", 58, pool.ClassLarge},
		{"huge", 1 << 20, pool.ClassLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pool.SelectClass(tt.size))
		})
	}
}

func TestClassFor(t *testing.T) {
	type xy struct{ X, Y int32 }

	assert.Equal(t, pool.ClassSmall, pool.ClassFor[uint32]())
	assert.Equal(t, pool.ClassSmall, pool.ClassFor[xy]())
	assert.Equal(t, pool.ClassSmall, pool.ClassFor[struct{}]())
	assert.Equal(t, pool.ClassSmall, pool.ClassFor[[pool.Threshold]byte]())
	assert.Equal(t, pool.ClassLarge, pool.ClassFor[[pool.Threshold + 1]byte]())
	assert.Equal(t, pool.ClassLarge, pool.ClassFor[[58]uint8]())
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "small", pool.ClassSmall.String())
	assert.Equal(t, "large", pool.ClassLarge.String())
	assert.Equal(t, "unknown", pool.Class(9).String())

	assert.True(t, pool.ClassLarge.Valid())
	assert.False(t, pool.Class(2).Valid())
	assert.Equal(t, []pool.Class{pool.ClassSmall, pool.ClassLarge}, pool.Classes())
}
