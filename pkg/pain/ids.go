package pain

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces the message and payment-information identifiers
// stamped into each generated document. Implementations must keep both
// within 35 characters.
type IDGenerator interface {
	MessageID() string
	PaymentInfoID() string
}

// Generator is the production IDGenerator: prefix, wall-clock timestamp and
// a random suffix. Ids are unique enough to tell messages apart; uniqueness
// is not a security property.
type Generator struct {
	now func() time.Time
}

// NewGenerator returns a Generator backed by the system clock.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// MessageID returns an id like C2B-20250830120000-1A2B3C4D.
func (g *Generator) MessageID() string {
	return g.stamp("C2B", 8)
}

// PaymentInfoID returns an id like PMT-20250830120000-1A2B3C.
func (g *Generator) PaymentInfoID() string {
	return g.stamp("PMT", 6)
}

func (g *Generator) stamp(prefix string, suffixLen int) string {
	ts := g.now().Format("20060102150405")
	u := uuid.New()
	rnd := strings.ToUpper(hex.EncodeToString(u[:]))[:suffixLen]
	return fmt.Sprintf("%s-%s-%s", prefix, ts, rnd)
}
