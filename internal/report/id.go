// Package report turns a screening result into the customer-facing
// deliverable: a report ID, a rendered HTML document, a printed PDF, and a
// signed download link.
package report

import (
	"crypto/rand"
	"fmt"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewID returns a report identifier of the form "BCR-" followed by six
// base36 characters, e.g. "BCR-7K2Q9X".
func NewID() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("report id entropy: %v", err))
	}
	id := make([]byte, 6)
	for i, b := range buf {
		id[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return "BCR-" + string(id)
}
