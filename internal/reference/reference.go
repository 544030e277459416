// Package reference generates and validates the customer-facing order
// tracking code, format PREFIX-YYYYMMDD-XXXXX. The random tail is drawn from
// an alphabet with the look-alike symbols 0, O, I and 1 removed. Uniqueness
// is probabilistic; the store's unique index is the final arbiter.
package reference

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

const (
	alphabet   = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength = 5
	dateLayout = "20060102"
)

// Codec mints and checks order references for a fixed prefix.
type Codec struct {
	prefix  string
	pattern *regexp.Regexp
}

// NewCodec builds a codec for the given prefix. The prefix is normalized to
// uppercase and must be non-empty alphanumeric.
func NewCodec(prefix string) (*Codec, error) {
	p := strings.ToUpper(strings.TrimSpace(prefix))
	if p == "" {
		return nil, fmt.Errorf("reference prefix must not be empty")
	}
	if !regexp.MustCompile(`^[A-Z0-9]+$`).MatchString(p) {
		return nil, fmt.Errorf("reference prefix %q must be alphanumeric", prefix)
	}
	pattern, err := regexp.Compile(`^` + regexp.QuoteMeta(p) + `-\d{8}-[` + alphabet + `]{` + fmt.Sprint(codeLength) + `}$`)
	if err != nil {
		return nil, err
	}
	return &Codec{prefix: p, pattern: pattern}, nil
}

// Generate produces a fresh reference for the given moment. No collision
// check is performed; callers retry on a store-level uniqueness violation.
func (c *Codec) Generate(now time.Time) string {
	var code strings.Builder
	for i := 0; i < codeLength; i++ {
		code.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return fmt.Sprintf("%s-%s-%s", c.prefix, now.Format(dateLayout), code.String())
}

// Validate reports whether candidate matches the reference pattern exactly,
// after normalizing to uppercase. Used to cheaply reject malformed tracking
// queries before they reach the store.
func (c *Codec) Validate(candidate string) bool {
	return c.pattern.MatchString(Normalize(candidate))
}

// ExtractDate parses the embedded date out of a reference. The second return
// is false for any malformed or impossible input. Diagnostics only: the
// stored CreatedAt is authoritative for date-based queries.
func (c *Codec) ExtractDate(candidate string) (time.Time, bool) {
	normalized := Normalize(candidate)
	if !c.pattern.MatchString(normalized) {
		return time.Time{}, false
	}
	parts := strings.Split(normalized, "-")
	day, err := time.Parse(dateLayout, parts[1])
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// Normalize uppercases and trims a candidate reference for comparison.
func Normalize(candidate string) string {
	return strings.ToUpper(strings.TrimSpace(candidate))
}
