package typedevent_test

import (
	"testing"

	"github.com/randalmurphal/typedevent/pkg/typedevent"
	"github.com/randalmurphal/typedevent/pkg/typedevent/pool"
	"github.com/stretchr/testify/require"
)

// newTestFactory returns a factory over pools with the given capacities.
func newTestFactory(t *testing.T, smallCap, largeCap int, opts ...typedevent.FactoryOption) (*typedevent.Factory, *pool.Registry) {
	t.Helper()
	reg, err := pool.NewRegistry(pool.Config{
		Small: pool.ClassConfig{BlockSize: pool.DefaultConfig.Small.BlockSize, Capacity: smallCap},
		Large: pool.ClassConfig{BlockSize: pool.DefaultConfig.Large.BlockSize, Capacity: largeCap},
	})
	require.NoError(t, err)
	return typedevent.NewFactory(reg, opts...), reg
}

// sampleHIDPP returns a protocol message with recognizable parameters.
func sampleHIDPP(device uint8) typedevent.HIDPPPayload {
	msg := typedevent.HIDPPPayload{DeviceIdx: device, FeatureIdx: 2, FuncIndexSwID: 3}
	for i := range msg.MethodParams {
		msg.MethodParams[i] = uint8(i)
	}
	return msg
}
