// Package linkflags renders a resolved bundle into compiler and linker
// arguments for a particular toolchain.
package linkflags

import (
	"fmt"
	"strings"

	"lab47.dev/crashlink/pkg/data"
	"lab47.dev/crashlink/pkg/target"
)

type Style string

const (
	GNU  Style = "gnu"
	MSVC Style = "msvc"
)

func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(s)) {
	case GNU:
		return GNU, nil
	case MSVC:
		return MSVC, nil
	default:
		return "", fmt.Errorf("unknown flag style: %s", s)
	}
}

// StyleFor returns the native toolchain style of a platform.
func StyleFor(p target.Platform) Style {
	if p == target.Win64 {
		return MSVC
	}

	return GNU
}

// Cflags returns the arguments needed to compile against the SDK headers.
func Cflags(b *data.Bundle, style Style) []string {
	flags := []string{}

	if !b.HasPlatformSupport {
		return flags
	}

	inc, def := "-I", "-D"
	if style == MSVC {
		inc, def = "/I", "/D"
	}

	if b.IncludePath != "" {
		flags = append(flags, inc+b.IncludePath)
	}

	for _, d := range b.Definitions {
		flags = append(flags, def+d)
	}

	return flags
}

// Libs returns the link arguments, libraries first in their resolved order
// followed by system libraries.
func Libs(b *data.Bundle, style Style) []string {
	flags := []string{}

	if !b.HasPlatformSupport {
		return flags
	}

	flags = append(flags, b.Libraries...)

	for _, lib := range b.SystemLibraries {
		if style == GNU {
			lib = "-l" + strings.TrimSuffix(strings.TrimPrefix(lib, "lib"), ".lib")
		}

		flags = append(flags, lib)
	}

	return flags
}

// Quote wraps arg in double quotes when it contains whitespace or quotes,
// so paths like "C:\Program Files\..." survive a shell or response file.
func Quote(arg string) string {
	if arg == "" {
		return `""`
	}

	if !strings.ContainsAny(arg, " \t\n\"'") {
		return arg
	}

	return `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
}

// Join quotes each argument and joins them into a single command line.
func Join(args []string) string {
	quoted := make([]string, len(args))

	for i, arg := range args {
		quoted[i] = Quote(arg)
	}

	return strings.Join(quoted, " ")
}
