package certops

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// suffixSpace is 36^6: the number of distinct six-character base36 suffixes.
const suffixSpace = 2176782336

// GenerateCertID builds a client-side unique-enough certificate identifier:
// CERT-<millisecond timestamp>-<six base36 characters>, uppercased.
// Collisions require the same millisecond and the same draw out of 36^6;
// accepted as practically negligible, and a duplicate is rejected by the
// contract anyway.
func GenerateCertID() string {
	suffix := fmt.Sprintf("%06s", strconv.FormatUint(uint64(rand.Int63n(suffixSpace)), 36))
	return strings.ToUpper(fmt.Sprintf("CERT-%d-%s", time.Now().UnixMilli(), suffix))
}
