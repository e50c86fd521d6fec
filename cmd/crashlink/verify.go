package main

import (
	"fmt"
	"path/filepath"

	"lab47.dev/crashlink/pkg/sumfile"
)

func verifyStaged(dest, manifest string) error {
	sf, err := sumfile.ReadFile(filepath.Join(dest, manifest))
	if err != nil {
		return err
	}

	if err := sf.Verify(dest); err != nil {
		return err
	}

	fmt.Printf("verified %d staged payloads\n", len(sf.Entities()))

	return nil
}
