package resolve

import (
	"encoding/json"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"lab47.dev/crashlink/pkg/data"
)

// Fingerprint returns a stable identifier for the bundle's contents. Two
// bundles with the same fingerprint link and ship identically.
func Fingerprint(b *data.Bundle) (string, error) {
	h, _ := blake2b.New256(nil)

	err := json.NewEncoder(h).Encode(b)
	if err != nil {
		return "", errors.Wrapf(err, "encoding bundle")
	}

	return "b2:" + base58.Encode(h.Sum(nil)), nil
}
