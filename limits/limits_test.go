package limits

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	require := require.New(t)

	l := Default()
	require.NoError(l.Validate())
	require.Equal(16*1024*1024, l.MaxUserObjectSize)
	require.Equal(16*1024*1024+16*1024, l.MaxInternalObjectSize)
	require.Equal(64*1024*1024, l.MaxBufferSize)
	require.Equal(512, l.InlineSize)
	require.Equal(8192, l.Alignment)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Limits)
		errMsg string
	}{
		{"zero buffer", func(l *Limits) { l.MaxBufferSize = 0 }, "MaxBufferSize must be positive"},
		{"growth base", func(l *Limits) { l.GrowthBase = 96 }, "GrowthBase 96 is not a power of two"},
		{"alignment", func(l *Limits) { l.Alignment = 1000 }, "Alignment 1000 is not a power of two"},
		{"inline too large", func(l *Limits) { l.InlineSize = 1024 }, "exceeds the inline capacity"},
		{"internal below user", func(l *Limits) { l.MaxInternalObjectSize = MiB }, "below MaxUserObjectSize"},
		{"buffer below base", func(l *Limits) { l.MaxBufferSize = 32 }, "below GrowthBase"},
		{"shrink above max", func(l *Limits) { l.AlignedShrinkThreshold = 1024 * MiB }, "exceeds AlignedMaxSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Default()
			tt.mutate(&l)
			err := l.Validate()
			require.ErrorIs(t, err, ErrInvalidLimits)
			require.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"64MiB", 64 * MiB},
		{"8k", 8 * KiB},
		{"16m", 16 * MiB},
		{"512", 512},
		{"1GiB", 1024 * MiB},
	}

	for _, tt := range tests {
		got, err := ParseSize(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseSize("lots")
	require.Error(t, err)

	_, err = ParseSize("4TiB")
	require.ErrorIs(t, err, ErrInvalidLimits)
}

func TestHumanSize(t *testing.T) {
	require.Equal(t, "64MiB", HumanSize(64*MiB))
	require.Equal(t, "512B", HumanSize(512))
}
