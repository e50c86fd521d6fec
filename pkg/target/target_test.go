package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatform(t *testing.T) {
	t.Run("accepts canonical names", func(t *testing.T) {
		for _, p := range Platforms {
			got, err := ParsePlatform(string(p))
			require.NoError(t, err)

			assert.Equal(t, p, got)
		}
	})

	t.Run("accepts aliases in any case", func(t *testing.T) {
		p, err := ParsePlatform("Windows")
		require.NoError(t, err)
		assert.Equal(t, Win64, p)

		p, err = ParsePlatform(" darwin ")
		require.NoError(t, err)
		assert.Equal(t, Mac, p)
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := ParsePlatform("amiga")
		assert.Error(t, err)
	})
}

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBackend, b)

	b, err = ParseBackend("Breakpad")
	require.NoError(t, err)
	assert.Equal(t, Breakpad, b)

	_, err = ParseBackend("minidump")
	assert.Error(t, err)

	assert.Equal(t, "Crashpad", Crashpad.Dir())
	assert.Equal(t, "Breakpad", Breakpad.Dir())
}

func TestHostPlatform(t *testing.T) {
	cases := []struct {
		os, arch string
		want     Platform
	}{
		{"windows", "x86_64", Win64},
		{"linux", "x86_64", Linux},
		{"linux", "aarch64", LinuxArm64},
		{"darwin", "arm64", Mac},
	}

	for _, c := range cases {
		p, err := hostPlatform(c.os, c.arch)
		require.NoError(t, err)

		assert.Equal(t, c.want, p, "%s/%s", c.os, c.arch)
	}

	_, err := hostPlatform("plan9", "386")
	assert.Error(t, err)
}
