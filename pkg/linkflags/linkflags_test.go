package linkflags

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lab47.dev/crashlink/pkg/resolve"
	"lab47.dev/crashlink/pkg/target"
)

func TestFlags(t *testing.T) {
	t.Run("renders msvc flags for Win64", func(t *testing.T) {
		b := resolve.Resolve(resolve.Input{SDKRoot: "sdk", Platform: target.Win64, Backend: target.Breakpad})
		dir := filepath.Join("sdk", "Win64-Breakpad")

		style := StyleFor(target.Win64)
		assert.Equal(t, MSVC, style)

		assert.Equal(t, []string{
			"/I" + filepath.Join(dir, "include"),
			"/DSENTRY_BUILD_STATIC=1",
		}, Cflags(b, style))

		assert.Equal(t, []string{
			filepath.Join(dir, "lib", "sentry.lib"),
			filepath.Join(dir, "lib", "breakpad_client.lib"),
			"version.lib",
			"dbghelp.lib",
		}, Libs(b, style))
	})

	t.Run("renders gnu flags for Linux", func(t *testing.T) {
		b := resolve.Resolve(resolve.Input{SDKRoot: "sdk", Platform: target.Linux})
		dir := filepath.Join("sdk", "Linux-Crashpad")

		style := StyleFor(target.Linux)

		assert.Equal(t, []string{
			"-I" + filepath.Join(dir, "include"),
			"-DSENTRY_BUILD_STATIC=1",
		}, Cflags(b, style))

		libs := Libs(b, style)
		require.Len(t, libs, 9)
		assert.Equal(t, filepath.Join(dir, "lib", "libsentry.a"), libs[0])
	})

	t.Run("turns windows system libraries into -l flags", func(t *testing.T) {
		b := resolve.Resolve(resolve.Input{SDKRoot: "sdk", Platform: target.Win64})

		libs := Libs(b, GNU)
		assert.Equal(t, []string{"-lversion", "-ldbghelp"}, libs[len(libs)-2:])
	})

	t.Run("renders nothing without platform support", func(t *testing.T) {
		b := resolve.Resolve(resolve.Input{Platform: target.Android})

		assert.Empty(t, Cflags(b, GNU))
		assert.Empty(t, Libs(b, MSVC))
	})
}

func TestParseStyle(t *testing.T) {
	s, err := ParseStyle("MSVC")
	require.NoError(t, err)
	assert.Equal(t, MSVC, s)

	_, err = ParseStyle("borland")
	assert.Error(t, err)
}

func TestJoin(t *testing.T) {
	t.Run("quotes arguments holding spaces", func(t *testing.T) {
		b := resolve.Resolve(resolve.Input{
			SDKRoot:  "/Program Files/Epic Games/sentry",
			Platform: target.Win64,
			Backend:  target.Breakpad,
		})

		line := Join(Cflags(b, MSVC))

		inc := "/I" + filepath.Join("/Program Files/Epic Games/sentry", "Win64-Breakpad", "include")
		assert.Equal(t, `"`+inc+`" /DSENTRY_BUILD_STATIC=1`, line)
	})

	t.Run("leaves plain arguments untouched", func(t *testing.T) {
		assert.Equal(t, "-Isdk/include -lversion", Join([]string{"-Isdk/include", "-lversion"}))
	})

	t.Run("escapes embedded quotes", func(t *testing.T) {
		assert.Equal(t, `"a\"b"`, Quote(`a"b`))
		assert.Equal(t, `""`, Quote(""))
	})
}
