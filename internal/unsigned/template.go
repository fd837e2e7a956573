package unsigned

import "encoding/json"

// Credential document constants shared with the downstream signing stage.
// The context order is a compatibility contract with the credential schema:
// later contexts may shadow term definitions from earlier ones.
const (
	VerifiableCredentialV2Context = "https://www.w3.org/ns/credentials/v2"
	EveryCREDCredentialV1Context  = "https://w3id.org/everycred/v1"
	CredentialExamplesV1Context   = "https://www.w3.org/2018/credentials/examples/v1"

	URNUUIDPrefix = "urn:uuid:"

	// ECDSAKoblitzPubkeyPrefix prefixes the issuer crypto address in the
	// base template, whatever the address value is.
	ECDSAKoblitzPubkeyPrefix = "ecdsa-koblitz-pubkey:"
)

const criteriaNarrative = "This is a blockchain-based certificate which is issued by a blockchain transaction."

// BaseTemplate is the flat unsigned certificate record. It carries every
// field the signing pipeline needs, keyed by the canonical names in the
// json tags. Values are fixed at assembly time and never rewritten.
type BaseTemplate struct {
	// Credential validity window, empty when open-ended.
	ValidFrom  string `json:"validFrom"`
	ValidUntil string `json:"validUntil"`

	// Issuer information.
	IssuerURL       string `json:"issuer_url"`
	IssuerEmail     string `json:"issuer_email"`
	IssuerName      string `json:"issuer_name"`
	IssuerDID       string `json:"issuer_did"`
	IssuerID        string `json:"issuer_id"`
	RevocationList  string `json:"revocation_list"`
	IssuerPublicKey string `json:"issuer_public_key"`

	// Subject information.
	SubjectDID     string `json:"subject_did"`
	SubjectProfile string `json:"subject_profile"`

	// Certificate information.
	CertificateTitle string `json:"certificate_title"`
	Roster           string `json:"roster"`

	// Certificate images, carried as opaque references.
	IssuerLogoFile string `json:"issuer_logo_file"`
	CertImageFile  string `json:"cert_image_file"`

	// Additional fields, JSON-encoded once at assembly.
	AdditionalGlobalFields       json.RawMessage `json:"additional_global_fields"`
	AdditionalPerRecipientFields json.RawMessage `json:"additional_per_recipient_fields"`

	// Static information interpreted downstream as policy toggles.
	CertificateDescription string `json:"certificate_description"`
	CriteriaNarrative      string `json:"criteria_narrative"`
	FilenameFormat         string `json:"filename_format"`
	NoClobber              bool   `json:"no_clobber"`
	HashEmails             bool   `json:"hash_emails"`
}

// AssertionDocument is the nested credential-shaped document derived from a
// BaseTemplate. It still contains placeholder tokens; the signer resolves
// them before the document is complete.
type AssertionDocument map[string]any
