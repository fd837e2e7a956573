// Package schema holds the identity value objects consumed by the unsigned
// certificate generator. Any source able to populate these attributes
// satisfies the contract; construction is left to the caller.
package schema

// Issuer describes the credential issuer.
type Issuer struct {
	Name           string `json:"name"`
	Website        string `json:"website"`
	Email          string `json:"email"`
	DID            string `json:"did"`
	ProfileLink    string `json:"profile_link"`
	RevocationList string `json:"revocation_list"`
	CryptoAddress  string `json:"crypto_address"`
}

// Subject describes the credential subject.
type Subject struct {
	Title       string `json:"title"`
	DID         string `json:"did"`
	ProfileLink string `json:"profile_link"`
}
