// Package fingerprint derives short key fingerprints used to skip base
// relation reads during equality probes.
package fingerprint

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/xxh3"
)

// MaxWidth is the widest supported fingerprint; storage uses a uint64 per
// entry before packing, so one bit must remain free.
const MaxWidth = 63

// Mix runs a key through a fixed 64-bit avalanche hash. The same function
// is used at build and query time; changing it invalidates built indexes.
func Mix(key uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], key)
	return xxh3.Hash(b[:])
}

// Fingerprinter produces width-bit fingerprints. Width 0 is the disabled
// variant: Fingerprint is never consulted and Test accepts everything.
type Fingerprinter struct {
	mask  uint64
	width uint8
}

// New returns a Fingerprinter for the given width. Widths above MaxWidth
// are a configuration error.
func New(width uint8) (Fingerprinter, error) {
	if width > MaxWidth {
		return Fingerprinter{}, fmt.Errorf("fingerprint width %d exceeds maximum %d", width, MaxWidth)
	}
	var mask uint64
	if width > 0 {
		mask = (uint64(1) << width) - 1
	}
	return Fingerprinter{mask: mask, width: width}, nil
}

// Width reports the configured fingerprint width in bits.
func (f Fingerprinter) Width() uint8 { return f.width }

// Enabled reports whether fingerprints are stored at all.
func (f Fingerprinter) Enabled() bool { return f.width > 0 }

// Fingerprint returns the low width bits of the mixed key.
func (f Fingerprinter) Fingerprint(key uint64) uint64 {
	return Mix(key) & f.mask
}

// Test reports whether key could be the key that produced print. A false
// result is definitive; a true result still requires a base data read.
func (f Fingerprinter) Test(key uint64, print uint64) bool {
	if f.width == 0 {
		return true
	}
	return f.Fingerprint(key) == print
}
