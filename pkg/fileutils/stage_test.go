package fileutils

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lab47.dev/crashlink/pkg/resolve"
	"lab47.dev/crashlink/pkg/sumfile"
	"lab47.dev/crashlink/pkg/target"
)

func TestStage(t *testing.T) {
	root, err := ioutil.TempDir("", "fileutils")
	require.NoError(t, err)

	defer os.RemoveAll(root)

	sdk := filepath.Join(root, "sdk")
	out := filepath.Join(root, "out")

	cleanup := func() {
		os.RemoveAll(out)
	}

	wf := func(path, content string) {
		t.Helper()

		os.MkdirAll(filepath.Dir(path), 0755)
		err := ioutil.WriteFile(path, []byte(content), 0755)
		require.NoError(t, err)
	}

	assertFile := func(t *testing.T, name, content string) {
		t.Helper()

		data, err := ioutil.ReadFile(filepath.Join(out, name))
		require.NoError(t, err)

		assert.Equal(t, content, string(data))
	}

	bundle := resolve.Resolve(resolve.Input{SDKRoot: sdk, Platform: target.Win64, Backend: target.Crashpad})
	require.Len(t, bundle.RuntimePayloads, 2)

	wf(bundle.RuntimePayloads[0], "handler")
	wf(bundle.RuntimePayloads[1], "wer")

	L := hclog.New(&hclog.LoggerOptions{Level: hclog.Info})

	t.Run("copies payloads next to the output and writes a manifest", func(t *testing.T) {
		defer cleanup()

		st := &Stage{
			L:        L,
			Payloads: bundle.RuntimePayloads,
			Dest:     out,
		}

		sf, err := st.Run()
		require.NoError(t, err)

		assertFile(t, "crashpad_handler.exe", "handler")
		assertFile(t, "crashpad_wer.dll", "wer")

		fi, err := os.Stat(filepath.Join(out, "crashpad_handler.exe"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0755), fi.Mode().Perm())

		assert.Equal(t, []string{"crashpad_handler.exe", "crashpad_wer.dll"}, sf.Entities())

		loaded, err := sumfile.ReadFile(filepath.Join(out, DefaultManifest))
		require.NoError(t, err)

		assert.NoError(t, loaded.Verify(out))
	})

	t.Run("can link rather than copy", func(t *testing.T) {
		defer cleanup()

		st := &Stage{
			L:        L,
			Payloads: bundle.RuntimePayloads,
			Dest:     out,
			Linked:   true,
		}

		_, err := st.Run()
		require.NoError(t, err)

		fi, err := os.Lstat(filepath.Join(out, "crashpad_wer.dll"))
		require.NoError(t, err)

		assert.Equal(t, os.ModeSymlink, fi.Mode()&os.ModeType)
		assertFile(t, "crashpad_wer.dll", "wer")
	})

	t.Run("replaces previously staged files", func(t *testing.T) {
		defer cleanup()

		wf(filepath.Join(out, "crashpad_handler.exe"), "stale")

		st := &Stage{L: L, Payloads: bundle.RuntimePayloads, Dest: out}

		_, err := st.Run()
		require.NoError(t, err)

		assertFile(t, "crashpad_handler.exe", "handler")
	})

	t.Run("leaves payloads alone when staged into their own directory", func(t *testing.T) {
		bin := filepath.Dir(bundle.RuntimePayloads[0])

		st := &Stage{L: L, Payloads: bundle.RuntimePayloads, Dest: bin}

		sf, err := st.Run()
		require.NoError(t, err)

		defer os.Remove(filepath.Join(bin, DefaultManifest))

		data, err := ioutil.ReadFile(bundle.RuntimePayloads[0])
		require.NoError(t, err)
		assert.Equal(t, "handler", string(data))

		assert.Equal(t, []string{"crashpad_handler.exe", "crashpad_wer.dll"}, sf.Entities())
		assert.NoError(t, sf.Verify(bin))
	})

	t.Run("replaces a stale symlink with a copy", func(t *testing.T) {
		defer cleanup()

		require.NoError(t, os.MkdirAll(out, 0755))
		require.NoError(t, os.Symlink(bundle.RuntimePayloads[1], filepath.Join(out, "crashpad_handler.exe")))

		st := &Stage{L: L, Payloads: bundle.RuntimePayloads, Dest: out}

		_, err := st.Run()
		require.NoError(t, err)

		fi, err := os.Lstat(filepath.Join(out, "crashpad_handler.exe"))
		require.NoError(t, err)

		assert.True(t, fi.Mode().IsRegular())
		assertFile(t, "crashpad_handler.exe", "handler")
		assertFile(t, "crashpad_wer.dll", "wer")
	})

	t.Run("writes an empty manifest when there is nothing to stage", func(t *testing.T) {
		defer cleanup()

		st := &Stage{L: L, Dest: out, Manifest: "none.sum"}

		sf, err := st.Run()
		require.NoError(t, err)

		assert.Empty(t, sf.Entities())
		assertFile(t, "none.sum", "")
	})

	t.Run("fails when a payload is missing", func(t *testing.T) {
		defer cleanup()

		st := &Stage{
			L:        L,
			Payloads: []string{filepath.Join(sdk, "missing", "crashpad_handler")},
			Dest:     out,
		}

		_, err := st.Run()
		assert.Error(t, err)
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		defer cleanup()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		st := &Stage{
			Ctx:      ctx,
			L:        L,
			Payloads: bundle.RuntimePayloads,
			Dest:     out,
		}

		_, err := st.Run()
		assert.Equal(t, context.Canceled, err)
	})
}
