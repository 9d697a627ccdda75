package generator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type ReferenceGenerator struct{}

func NewReferenceGenerator() *ReferenceGenerator {
	return &ReferenceGenerator{}
}

// GenerateOrderReference returns a short reference handed back to the user
// after a successful checkout, e.g. ORD-9f86d081c3a4.
func (g *ReferenceGenerator) GenerateOrderReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("ORD-%s", id[:12])
}

func (g *ReferenceGenerator) GenerateSessionToken() string {
	return uuid.NewString()
}
