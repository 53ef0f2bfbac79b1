package payment

import (
	"fmt"
	"time"

	"github.com/propmarket/server/internal/utils/random"
)

// RetryReferencePrefix prefixes references issued by a retry.
const RetryReferencePrefix = "RETRY"

const referenceRandomLength = 8

// NewReference builds a gateway reference: PREFIX_<unix millis>_<8 random upper alphanumerics>.
func NewReference(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), random.UpperAlphaNum(referenceRandomLength))
}
