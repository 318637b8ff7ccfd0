package erasure

import (
	"crypto/sha256"
	"encoding/hex"

	"skuflow/internal/domain/customer"
)

// Obfuscate replaces every personal field of the target with the hex digest
// of its current value, in place. Columns that are NULL stay NULL. The digest
// is one-way; repeated erasure re-hashes the already hashed values.
func Obfuscate(t *customer.ErasureTarget) {
	t.FirstName = digest(t.FirstName)
	t.LastName = digest(t.LastName)
	t.Email = digest(t.Email)
	t.PhoneNumber = digestPtr(t.PhoneNumber)
	t.Address = digestPtr(t.Address)
	t.Postcode = digestPtr(t.Postcode)
}

func digest(v string) string {
	sum := sha256.Sum256([]byte(v))
	return hex.EncodeToString(sum[:])
}

func digestPtr(v *string) *string {
	if v == nil {
		return nil
	}
	d := digest(*v)
	return &d
}
