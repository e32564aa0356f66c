package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("string enum", func(t *testing.T) {
		type EnumString string

		bar := New(EnumString("bar"), "Bar")
		require.Equal(t, EnumString("bar"), bar)

		v, err := ToEnum[EnumString]("Bar")
		require.NoError(t, err)
		require.Equal(t, bar, v)

		_, err = ToEnum[EnumString]("bar")
		require.Error(t, err)

		require.Equal(t, "Bar", ToString(bar))
		require.Equal(t, "", ToString(EnumString("foo")))
	})

	t.Run("int enum", func(t *testing.T) {
		type EnumInt int

		bar := New(EnumInt(100), "Bar")

		v, err := ToEnum[EnumInt]("Bar")
		require.NoError(t, err)
		require.Equal(t, bar, v)
		require.Equal(t, "Bar", ToString(bar))
	})

	t.Run("unregistered type", func(t *testing.T) {
		type Unknown int

		_, err := ToEnum[Unknown]("x")
		require.Error(t, err)
		require.Equal(t, "", ToString(Unknown(1)))
	})
}
