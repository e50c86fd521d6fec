package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"lab47.dev/crashlink/pkg/config"
	"lab47.dev/crashlink/pkg/fileutils"
	"lab47.dev/crashlink/pkg/linkflags"
	"lab47.dev/crashlink/pkg/pkgconfig"
	"lab47.dev/crashlink/pkg/resolve"
	"lab47.dev/crashlink/pkg/target"
)

func resolveF(ctx context.Context, opts struct {
	TargetOptions

	BundleOnly bool `long:"bundle-only" description:"output only the resolved bundle"`
	Dump       bool `long:"dump" description:"dump the raw structures instead of json"`
}) error {
	r, err := opts.resolve("resolve")
	if err != nil {
		return err
	}

	var out interface{} = r.Rules
	if opts.BundleOnly {
		out = r.Bundle()
	}

	if opts.Dump {
		spew.Dump(out)
		return nil
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding rules")
	}

	fmt.Println(string(data))

	fp, err := resolve.Fingerprint(r.Bundle())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "fingerprint: %s\n", fp)

	return nil
}

func flagsF(ctx context.Context, opts struct {
	TargetOptions

	Cflags bool   `long:"cflags" description:"print compiler flags"`
	Libs   bool   `long:"libs" description:"print linker flags"`
	Style  string `long:"style" description:"flag style: gnu or msvc (defaults to the platform's)"`
}) error {
	r, err := opts.resolve("flags")
	if err != nil {
		return err
	}

	style := linkflags.StyleFor(r.Input.Platform)

	if opts.Style != "" {
		style, err = linkflags.ParseStyle(opts.Style)
		if err != nil {
			return err
		}
	}

	if !opts.Cflags && !opts.Libs {
		opts.Cflags = true
		opts.Libs = true
	}

	var parts []string

	if opts.Cflags {
		parts = append(parts, linkflags.Cflags(r.Bundle(), style)...)
	}

	if opts.Libs {
		parts = append(parts, linkflags.Libs(r.Bundle(), style)...)
	}

	fmt.Println(linkflags.Join(parts))

	return nil
}

func pcF(ctx context.Context, opts struct {
	TargetOptions

	Dir     string `short:"o" long:"output-dir" default:"." description:"directory to write the .pc file into"`
	Name    string `long:"name" default:"sentry" description:"package name"`
	Version string `long:"version" default:"0.0.0" description:"package version"`
}) error {
	r, err := opts.resolve("pc")
	if err != nil {
		return err
	}

	path, err := pkgconfig.FromBundle(opts.Name, opts.Version, r.Bundle()).WriteFile(opts.Dir)
	if err != nil {
		return err
	}

	r.L.Info("wrote pkg-config file", "path", path)
	fmt.Println(path)

	return nil
}

func stageF(ctx context.Context, opts struct {
	TargetOptions

	Dest     string `short:"d" long:"dest" required:"true" description:"directory the built binary lives in"`
	Link     bool   `long:"link" description:"symlink payloads instead of copying them"`
	Manifest string `long:"manifest" default:"crashlink.sum" description:"name of the checksum manifest"`
	Verify   bool   `long:"verify" description:"verify previously staged payloads instead of staging"`
}) error {
	r, err := opts.resolve("stage")
	if err != nil {
		return err
	}

	if opts.Verify {
		return verifyStaged(opts.Dest, opts.Manifest)
	}

	st := &fileutils.Stage{
		Ctx:      ctx,
		L:        r.L,
		Payloads: r.Bundle().RuntimePayloads,
		Dest:     opts.Dest,
		Linked:   opts.Link,
		Manifest: opts.Manifest,
	}

	sf, err := st.Run()
	if err != nil {
		return err
	}

	for _, name := range sf.Entities() {
		fmt.Printf("staged %s\n", name)
	}

	return nil
}

func platformsF(ctx context.Context, opts struct {
	SDKRoot string `long:"sdk-root" description:"directory holding the prebuilt SDK"`
	Paths   bool   `long:"paths" description:"show artifact directories"`
}) error {
	root := opts.SDKRoot
	if root == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		root = cfg.SDKRoot
	}

	tw := tabwriter.NewWriter(os.Stdout, 4, 2, 1, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "PLATFORM\tBACKEND\tSUPPORTED\tLIBS\tPAYLOADS\tSYSTEM\n")

	for _, ent := range resolve.Matrix(root) {
		b := ent.Bundle

		fmt.Fprintf(tw, "%s\t%s\t%t\t%d\t%d\t%d\n",
			ent.Platform, ent.Backend, ent.Supported,
			len(b.Libraries), len(b.RuntimePayloads), len(b.SystemLibraries))

		if opts.Paths && ent.Supported {
			fmt.Fprintf(tw, "\t%s\t\t\t\t\n", resolve.ArtifactDir(root, ent.Platform, ent.Backend))
		}
	}

	return nil
}

func hostF(ctx context.Context, opts struct{}) error {
	p, err := target.Host()
	if err != nil {
		return err
	}

	fmt.Printf("host platform: %s (supported: %t)\n", p, resolve.Supported(p))

	return nil
}
