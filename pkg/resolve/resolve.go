package resolve

import (
	"path/filepath"

	"lab47.dev/crashlink/pkg/data"
	"lab47.dev/crashlink/pkg/target"
)

// Input is the set of build time facts resolution depends on.
type Input struct {
	SDKRoot  string
	Platform target.Platform
	Backend  target.Backend

	// Disable builds without crash reporting regardless of platform.
	Disable bool
}

// Supported reports whether the SDK ships artifacts for p.
func Supported(p target.Platform) bool {
	_, ok := sdkArtifacts[p]
	return ok
}

// Resolve maps the input to the linkage instructions for the SDK. It never
// fails: a disabled or unsupported build gets an empty bundle, and callers
// must check HasPlatformSupport before relying on crash reporting.
func Resolve(in Input) *data.Bundle {
	if in.Disable || !Supported(in.Platform) {
		return data.EmptyBundle()
	}

	backend := effectiveBackend(in.Backend)
	art := sdkArtifacts[in.Platform][backend]
	dir := ArtifactDir(in.SDKRoot, in.Platform, backend)

	b := data.EmptyBundle()

	for _, lib := range art.libs {
		b.Libraries = append(b.Libraries, filepath.Join(dir, LibDir, lib))
	}

	for _, payload := range art.payloads {
		b.RuntimePayloads = append(b.RuntimePayloads, filepath.Join(dir, BinDir, payload))
	}

	b.SystemLibraries = append(b.SystemLibraries, systemLibraries[in.Platform]...)

	if len(b.Libraries) > 0 {
		b.Definitions = append(b.Definitions, data.StaticDefinition)
	}

	b.IncludePath = filepath.Join(dir, IncludeDir)
	b.HasPlatformSupport = true

	return b
}

func effectiveBackend(b target.Backend) target.Backend {
	switch b {
	case target.Crashpad, target.Breakpad:
		return b
	default:
		return target.DefaultBackend
	}
}
