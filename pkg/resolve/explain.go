package resolve

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"lab47.dev/crashlink/pkg/data"
	"lab47.dev/crashlink/pkg/target"
)

// Explain describes why Resolve produced the bundle it did for in.
func Explain(in Input) string {
	switch {
	case in.Disable:
		return "crash reporting disabled"
	case !Supported(in.Platform):
		return fmt.Sprintf("no crash reporting SDK for platform %s", in.Platform)
	default:
		return fmt.Sprintf("%s via %s", in.Platform, effectiveBackend(in.Backend).Dir())
	}
}

// Report logs the outcome of resolution. A build that ends up without crash
// reporting is a warning so it doesn't go unnoticed in build logs.
func Report(L hclog.Logger, in Input, b *data.Bundle) {
	if L == nil {
		L = hclog.L()
	}

	if !b.HasPlatformSupport {
		L.Warn("building without crash reporting",
			"platform", in.Platform,
			"reason", Explain(in),
		)
		return
	}

	L.Info("resolved crash reporting SDK",
		"platform", in.Platform,
		"backend", effectiveBackend(in.Backend),
		"libraries", len(b.Libraries),
		"system-libraries", len(b.SystemLibraries),
		"payloads", len(b.RuntimePayloads),
	)

	L.Debug("resolved bundle", "include", b.IncludePath, "libraries", b.Libraries)
}

// MatrixEntry describes one platform/backend combination.
type MatrixEntry struct {
	Platform  target.Platform
	Backend   target.Backend
	Supported bool
	Bundle    *data.Bundle
}

// Matrix resolves every known platform and backend combination against root.
func Matrix(root string) []MatrixEntry {
	var entries []MatrixEntry

	for _, p := range target.Platforms {
		for _, b := range target.Backends {
			bundle := Resolve(Input{SDKRoot: root, Platform: p, Backend: b})

			entries = append(entries, MatrixEntry{
				Platform:  p,
				Backend:   b,
				Supported: bundle.HasPlatformSupport,
				Bundle:    bundle,
			})
		}
	}

	return entries
}
