package resolve

import (
	"path/filepath"

	"lab47.dev/crashlink/pkg/target"
)

// artifacts are the files the prebuilt SDK ships for one platform/backend
// pair. Library order is the link order and matches the SDK's dependency
// graph, so it must not be sorted.
type artifacts struct {
	libs     []string
	payloads []string
}

var sdkArtifacts = map[target.Platform]map[target.Backend]artifacts{
	target.Win64: {
		target.Crashpad: {
			libs: []string{
				"sentry.lib",
				"crashpad_client.lib",
				"crashpad_compat.lib",
				"crashpad_handler_lib.lib",
				"crashpad_minidump.lib",
				"crashpad_snapshot.lib",
				"crashpad_tools.lib",
				"crashpad_util.lib",
				"crashpad_zlib.lib",
				"mini_chromium.lib",
			},
			payloads: []string{
				"crashpad_handler.exe",
				"crashpad_wer.dll",
			},
		},
		target.Breakpad: {
			libs: []string{
				"sentry.lib",
				"breakpad_client.lib",
			},
		},
	},
	target.Linux: {
		target.Crashpad: {
			libs: []string{
				"libsentry.a",
				"libcrashpad_client.a",
				"libcrashpad_compat.a",
				"libcrashpad_handler_lib.a",
				"libcrashpad_minidump.a",
				"libcrashpad_snapshot.a",
				"libcrashpad_tools.a",
				"libcrashpad_util.a",
				"libmini_chromium.a",
			},
			payloads: []string{
				"crashpad_handler",
			},
		},
		target.Breakpad: {
			libs: []string{
				"libsentry.a",
				"libbreakpad_client.a",
			},
		},
	},
}

// systemLibraries are needed for module version info and symbol resolution,
// independent of the backend.
var systemLibraries = map[target.Platform][]string{
	target.Win64: {"version.lib", "dbghelp.lib"},
}

// Subdirectories of an artifact directory.
const (
	IncludeDir = "include"
	LibDir     = "lib"
	BinDir     = "bin"
)

// DefaultSDKRoot is where the prebuilt SDK lives relative to the plugin.
const DefaultSDKRoot = "Binaries/ThirdParty/sentry-native"

// ArtifactDir returns the directory holding the SDK build for the given
// platform and backend.
func ArtifactDir(root string, p target.Platform, b target.Backend) string {
	return filepath.Join(root, string(p)+"-"+b.Dir())
}
