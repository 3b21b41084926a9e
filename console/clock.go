package console

import (
	"fmt"
	"time"
)

// IdleElapsed is the session clock display when no session is recording.
const IdleElapsed = "00:00:00"

// FormatElapsed renders a session duration as zero-padded HH:MM:SS. Sessions
// are expected to stay within a single day; no day rollover is applied.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int(d.Seconds())
	return fmt.Sprintf(
		"%02d:%02d:%02d",
		seconds/3600,
		(seconds/60)%60,
		seconds%60,
	)
}
