package fixture

import (
	"fmt"

	"github.com/arloliu/cdr/recorder"
)

// VerifyRecording checks every entry of a recording with VerifyPayload.
//
// Returns:
//   - int: Number of entries verified before the first failure
//   - error: the first read or verification error, annotated with the
//     entry's position and schema
func VerifyRecording(r *recorder.Reader) (int, error) {
	n := 0
	for e, err := range r.All() {
		if err != nil {
			return n, err
		}

		if _, err := VerifyPayload(e.Schema, e.Data); err != nil {
			return n, fmt.Errorf("entry %d (%s): %w", n, e.Schema, err)
		}
		n++
	}

	return n, nil
}
