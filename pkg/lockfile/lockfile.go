// Package lockfile provides a simple exclusive lock based on creating a
// file that must not already exist.
package lockfile

import (
	"context"
	"os"
	"time"
)

// PollInterval is how often a held lock is retried.
var PollInterval = time.Second

// Take creates path exclusively, waiting while another process holds it.
// waiting is called before each wait. The returned func releases the lock.
func Take(ctx context.Context, path string, waiting func()) (func(), error) {
	tk := time.NewTicker(PollInterval)
	defer tk.Stop()

	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			f.Close()
			break
		}

		if !os.IsExist(err) {
			return nil, err
		}

		if waiting != nil {
			waiting()
		}

		select {
		case <-tk.C:
			// retry
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	release := func() {
		os.Remove(path)
	}

	return release, nil
}
