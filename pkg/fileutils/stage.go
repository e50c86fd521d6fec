package fileutils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"lab47.dev/crashlink/pkg/humanize"
	"lab47.dev/crashlink/pkg/lockfile"
	"lab47.dev/crashlink/pkg/progress"
	"lab47.dev/crashlink/pkg/sumfile"
)

// DefaultManifest is the name of the checksum file written next to the
// staged payloads.
const DefaultManifest = "crashlink.sum"

// LockName is held in the destination while staging so concurrent
// packaging steps sharing an output directory don't interleave.
const LockName = ".crashlink.lock"

// Stage places runtime payloads next to a build's output so they ship with
// the binary.
type Stage struct {
	Ctx      context.Context
	L        hclog.Logger
	Payloads []string
	Dest     string
	Linked   bool
	ModeOr   os.FileMode
	Manifest string
}

func (s *Stage) shouldCancel() error {
	if s.Ctx == nil {
		return nil
	}

	select {
	case <-s.Ctx.Done():
		return s.Ctx.Err()
	default:
		return nil
	}
}

// Run stages every payload and writes the manifest, returning it.
func (s *Stage) Run() (*sumfile.Sumfile, error) {
	if s.L == nil {
		s.L = hclog.L()
	}

	ctx := s.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	err := os.MkdirAll(s.Dest, 0755)
	if err != nil {
		return nil, errors.Wrapf(err, "creating staging directory")
	}

	release, err := lockfile.Take(ctx, filepath.Join(s.Dest, LockName), func() {
		s.L.Info("waiting for staging lock", "dest", s.Dest)
	})
	if err != nil {
		return nil, err
	}

	defer release()

	var (
		sf    sumfile.Sumfile
		total int64
	)

	bar := progress.Count(ctx, int64(len(s.Payloads)), "staging payloads")
	defer bar.Close()

	for _, payload := range s.Payloads {
		if err := s.shouldCancel(); err != nil {
			return nil, err
		}

		name := filepath.Base(payload)
		bar.On(name)

		fi, err := os.Stat(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "runtime payload unavailable")
		}

		if !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("runtime payload is not a regular file: %s", payload)
		}

		target := filepath.Join(s.Dest, name)

		same, err := sameFile(fi, target)
		if err != nil {
			return nil, err
		}

		switch {
		case same:
			s.L.Debug("payload already in place", "path", target)
		case s.Linked:
			s.L.Debug("symlink", "old", payload, "new", target)
			err = s.link(payload, target)
		default:
			s.L.Trace("copy payload", "from", payload, "to", target)
			err = s.copyFile(payload, target, fi)
		}

		if err != nil {
			return nil, errors.Wrapf(err, "staging %s", name)
		}

		h, err := sumfile.HashFile(payload)
		if err != nil {
			return nil, err
		}

		sf.Add(name, sumfile.Blake2b, h)
		total += fi.Size()

		bar.Tick()
	}

	manifest := s.Manifest
	if manifest == "" {
		manifest = DefaultManifest
	}

	err = sf.WriteFile(filepath.Join(s.Dest, manifest))
	if err != nil {
		return nil, err
	}

	s.L.Info("staged runtime payloads", "dest", s.Dest, "count", len(s.Payloads), "size", humanize.Size(total))

	return &sf, nil
}

// sameFile reports whether target already is the payload described by fi.
// Anything else at target is removed so it can be replaced.
func sameFile(fi os.FileInfo, target string) (bool, error) {
	tfi, err := os.Lstat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}

	if tfi.Mode().IsRegular() && os.SameFile(fi, tfi) {
		return true, nil
	}

	return false, os.Remove(target)
}

func (s *Stage) link(from, to string) error {
	absFrom, err := filepath.Abs(from)
	if err != nil {
		return err
	}

	absTo, err := filepath.Abs(to)
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(filepath.Dir(absTo), absFrom)
	if err != nil {
		rel = absFrom
	}

	return os.Symlink(rel, to)
}

func (s *Stage) copyFile(from, to string, fi os.FileInfo) error {
	f, err := os.Open(from)
	if err != nil {
		return err
	}

	defer f.Close()

	defer func() {
		// preserve mtime
		os.Chtimes(to, time.Now(), fi.ModTime())
	}()

	tg, err := os.OpenFile(
		to,
		os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
		fi.Mode().Perm()|s.ModeOr.Perm(),
	)
	if err != nil {
		return err
	}

	defer tg.Close()

	_, err = io.Copy(tg, f)
	if err != nil {
		return err
	}

	return tg.Close()
}
