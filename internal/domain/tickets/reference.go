package tickets

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ReferenceGenerator issues human readable ticket references such as
// TKT-7QXM-3F2A. The first block is keyed on the requester so references
// are not guessable from one another.
type ReferenceGenerator struct {
	secret string
}

func NewReferenceGenerator(secret string) *ReferenceGenerator {
	return &ReferenceGenerator{secret: secret}
}

func (g *ReferenceGenerator) Generate(userID int64) string {
	nonce := uuid.NewString()

	mac := hmac.New(sha256.New, []byte(g.secret))
	fmt.Fprintf(mac, "uid:%d|nonce:%s", userID, nonce)

	tag := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(mac.Sum(nil))

	return fmt.Sprintf(
		"TKT-%s-%s",
		strings.ToUpper(tag[:4]),
		strings.ToUpper(uuid.NewString()[:4]),
	)
}
