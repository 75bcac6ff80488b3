package apiretry

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

// retryHintRe matches server-advertised wait times such as
// "retry in 26.5 seconds" or "Retry in 3s". The number is in seconds and
// may carry a decimal fraction.
var retryHintRe = regexp.MustCompile(`(?i)retry in ([0-9]+(?:\.[0-9]+)?)`)

// ParseRetryHint extracts a server-advertised wait from an error message.
// Rate-limited APIs often name the wait they want in the error text
// ("Resource exhausted, retry in 26.5 seconds"); honouring it beats guessing
// with a backoff schedule. Fractional seconds round up to the next whole
// millisecond. The second return value reports whether a hint was found.
func ParseRetryHint(msg string) (time.Duration, bool) {
	m := retryHintRe.FindStringSubmatch(msg)
	if m == nil {
		return 0, false
	}

	seconds, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	ms := math.Ceil(seconds * 1000)
	return time.Duration(ms) * time.Millisecond, true
}
