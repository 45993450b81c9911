package notify

import (
	"fmt"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

const idSuffixLength = 10

// NewID returns a collision-resistant identifier of the form
// <prefix>-<unix-ms>-<random>. The random suffix keeps ids unique when
// several are generated within the same millisecond.
func NewID(prefix string, now time.Time) string {
	suffix, err := nanoid.New(idSuffixLength)
	if err != nil {
		// crypto/rand failure; fall back to the nanosecond clock which is
		// still unique within a single process.
		suffix = fmt.Sprintf("n%d", now.UnixNano())
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), suffix)
}
