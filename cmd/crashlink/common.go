package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/morikuni/aec"
	"lab47.dev/crashlink/pkg/config"
	"lab47.dev/crashlink/pkg/data"
	"lab47.dev/crashlink/pkg/resolve"
	"lab47.dev/crashlink/pkg/rules"
)

// TargetOptions are shared by every command that resolves a bundle. Set
// options override the config file and environment.
type TargetOptions struct {
	Platform   string `short:"p" long:"platform" description:"target platform (defaults to the host)"`
	Backend    string `short:"b" long:"backend" description:"crash capture backend: crashpad or breakpad"`
	SDKRoot    string `long:"sdk-root" description:"directory holding the prebuilt SDK"`
	Disable    bool   `long:"disable" description:"build without crash reporting"`
	LegacyIWYU bool   `long:"legacy-iwyu" description:"build tool lacks full include-what-you-use checking"`
	Verbose    []bool `short:"v" long:"verbose" description:"increase logging, repeat for trace"`
}

func (o *TargetOptions) logger(name string) hclog.Logger {
	level := hclog.Warn

	switch {
	case len(o.Verbose) > 1:
		level = hclog.Trace
	case len(o.Verbose) == 1:
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  level,
		Output: os.Stderr,
	})
}

type resolved struct {
	L      hclog.Logger
	Config *config.Config
	Input  resolve.Input
	Rules  *data.ModuleRules
}

func (r *resolved) Bundle() *data.Bundle {
	return r.Rules.Bundle
}

func (o *TargetOptions) resolve(name string) (*resolved, error) {
	L := o.logger(name)

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	if o.Backend != "" {
		cfg.Backend = o.Backend
	}

	if o.SDKRoot != "" {
		cfg.SDKRoot = o.SDKRoot
	}

	if o.Disable {
		cfg.Disable = true
	}

	if o.LegacyIWYU {
		cfg.FullIWYU = false
	}

	in, err := cfg.Input(o.Platform)
	if err != nil {
		return nil, err
	}

	L.Debug("resolving", "config", cfg.Path(), "platform", in.Platform, "backend", in.Backend, "sdk-root", in.SDKRoot)

	mr := rules.Build(in, cfg.Capability())

	resolve.Report(L, in, mr.Bundle)

	if !mr.Bundle.HasPlatformSupport {
		warnUnsupported(in)
	}

	return &resolved{L: L, Config: cfg, Input: in, Rules: mr}, nil
}

func warnUnsupported(in resolve.Input) {
	fmt.Fprintf(os.Stderr, "%s %s, the module builds without crash reporting\n",
		aec.YellowF.Apply("warning:"), resolve.Explain(in))
}
