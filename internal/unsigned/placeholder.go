package unsigned

// Placeholder is a reserved token standing in for a value that the
// downstream signing stage resolves. It is a distinct type so resolvers
// and tests can tell a deferred value apart from an ordinary string.
type Placeholder string

const (
	// PlaceholderIssuanceDate is replaced by the signer with the actual
	// issuance timestamp.
	PlaceholderIssuanceDate Placeholder = "*|DATE|*"
	// PlaceholderCertUID is replaced by the signer with the certificate UUID.
	PlaceholderCertUID Placeholder = "*|CERTUID|*"
)

func (p Placeholder) String() string {
	return string(p)
}

// IsPlaceholder reports whether v is one of the reserved sentinel tokens,
// either as a Placeholder or as its raw string form.
func IsPlaceholder(v any) bool {
	switch s := v.(type) {
	case Placeholder:
		return s == PlaceholderIssuanceDate || s == PlaceholderCertUID
	case string:
		return s == string(PlaceholderIssuanceDate) || s == string(PlaceholderCertUID)
	}
	return false
}
