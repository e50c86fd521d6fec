package rules

import (
	"lab47.dev/crashlink/pkg/data"
	"lab47.dev/crashlink/pkg/resolve"
)

const ModuleName = "SentryClient"

const PCHUsage = "UseExplicitOrSharedPCHs"

// IWYU enforcement modes.
const (
	IWYUFull    = "Full"
	IWYUEnforce = "Enforce"
)

var (
	PublicDependencyModules  = []string{"Core"}
	PrivateDependencyModules = []string{"CoreUObject", "Engine", "Projects", "HTTP"}
)

// Capability describes what the build tool in use supports. It is decided
// once by the caller rather than inferred from the tool's version here.
type Capability struct {
	// FullIWYU is set when the build tool can check unused includes as
	// well as missing ones.
	FullIWYU bool
}

func (c Capability) IWYUSupport() string {
	if c.FullIWYU {
		return IWYUFull
	}

	return IWYUEnforce
}

// Build produces the complete module rules for the input.
func Build(in resolve.Input, c Capability) *data.ModuleRules {
	return &data.ModuleRules{
		Name:                     ModuleName,
		PCHUsage:                 PCHUsage,
		IWYUSupport:              c.IWYUSupport(),
		PublicDependencyModules:  append([]string(nil), PublicDependencyModules...),
		PrivateDependencyModules: append([]string(nil), PrivateDependencyModules...),
		Bundle:                   resolve.Resolve(in),
	}
}
