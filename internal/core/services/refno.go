package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// newRefNo generates a reference number like CLM-20250114-3F2A9B1C.
// Uniqueness is backed by the unique index on the column; the uuid
// fragment makes collisions within a day practically impossible.
func newRefNo(prefix string) string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), fragment)
}
