package data

// StaticDefinition tells the SDK headers that the library is linked
// statically, which changes their symbol visibility declarations.
const StaticDefinition = "SENTRY_BUILD_STATIC=1"

// Bundle is the set of linkage instructions resolved for a single module
// build. A bundle without platform support has every other field empty.
type Bundle struct {
	IncludePath     string   `json:"include_path"`
	Definitions     []string `json:"definitions"`
	Libraries       []string `json:"libraries"`
	SystemLibraries []string `json:"system_libraries"`
	RuntimePayloads []string `json:"runtime_payloads"`

	HasPlatformSupport bool `json:"has_platform_support"`
}

// EmptyBundle returns the bundle used when crash reporting can't or shouldn't
// be linked.
func EmptyBundle() *Bundle {
	return &Bundle{
		Definitions:     []string{},
		Libraries:       []string{},
		SystemLibraries: []string{},
		RuntimePayloads: []string{},
	}
}

func (b *Bundle) Empty() bool {
	return !b.HasPlatformSupport &&
		b.IncludePath == "" &&
		len(b.Definitions) == 0 &&
		len(b.Libraries) == 0 &&
		len(b.SystemLibraries) == 0 &&
		len(b.RuntimePayloads) == 0
}
