package models

// Canonical stored-string dimensions for a page password. The salt is the
// hex form of a SHA-256 digest, the derived hash is the hex form of a
// 64-byte PBKDF2 derivation, and the canonical string is their
// concatenation with no separator.
const (
	SaltHexLen      = 64
	DerivedHexLen   = 128
	CanonicalPwdLen = SaltHexLen + DerivedHexLen
)

// PasswordRecord binds a page identifier to the verification data of the
// password protecting it. Records are serialized one per line as
// "pageID<TAB>canonical" inside the encrypted registry blob.
type PasswordRecord struct {
	// PageID identifies the protected page, unique within the registry.
	PageID string

	// Canonical is the stored-string form of the password:
	// 64 hex chars of salt followed by 128 hex chars of derived hash.
	Canonical string
}

// Salt returns the 64-character salt portion of the canonical string, or
// an empty string if the record is malformed.
func (r PasswordRecord) Salt() string {
	if len(r.Canonical) < SaltHexLen {
		return ""
	}
	return r.Canonical[:SaltHexLen]
}

// DerivedHash returns the hex-encoded derived hash portion of the
// canonical string, or an empty string if the record is malformed.
func (r PasswordRecord) DerivedHash() string {
	if len(r.Canonical) < SaltHexLen {
		return ""
	}
	return r.Canonical[SaltHexLen:]
}
