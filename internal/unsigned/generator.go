// Package unsigned assembles the unsigned certificate data consumed by the
// signing pipeline and projects it into a verifiable-credential assertion
// document. Both stages are pure: no I/O, no shared state, no logging.
package unsigned

import (
	"encoding/json"
	"fmt"

	"github.com/jayswal433/unsigned-gen/internal/schema"
)

// FieldMergePolicy controls how caller-supplied additional fields are
// merged into the assertion document.
type FieldMergePolicy int

const (
	// MergeAll applies every supplied field spec in sequence.
	MergeAll FieldMergePolicy = iota
	// MergeLegacySecond reproduces the historical behavior of the
	// generator: only the second supplied field spec is applied, and
	// payloads with fewer than two entries are skipped without error.
	MergeLegacySecond
)

type Generator struct {
	policy FieldMergePolicy
}

type Option func(*Generator)

// WithFieldMergePolicy overrides the default MergeAll policy.
func WithFieldMergePolicy(policy FieldMergePolicy) Option {
	return func(g *Generator) {
		g.policy = policy
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{policy: MergeAll}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Params carries the inputs for one unsigned certificate. RecordsJSON and
// the image references are opaque and pass through unmodified. GlobalFields
// and RecipientFields are arbitrary caller structures, JSON-encoded at this
// boundary. ValidFrom and ValidUntil are optional date strings; empty means
// open-ended.
type Params struct {
	Issuer          schema.Issuer
	Subject         schema.Subject
	RecordsJSON     string
	IssuerImage     string
	SubjectImage    string
	GlobalFields    any
	AppName         string
	RecipientFields any
	ValidFrom       string
	ValidUntil      string
}

// GenerateUnsignedCertData builds the flat base template for one
// certificate. Absent identity attributes degrade to empty strings; no
// validation happens here.
func (g *Generator) GenerateUnsignedCertData(p Params) (BaseTemplate, error) {
	globalFields, err := json.Marshal(p.GlobalFields)
	if err != nil {
		return BaseTemplate{}, fmt.Errorf("encode additional global fields: %w", err)
	}

	recipientFields, err := json.Marshal(p.RecipientFields)
	if err != nil {
		return BaseTemplate{}, fmt.Errorf("encode additional per-recipient fields: %w", err)
	}

	return BaseTemplate{
		ValidFrom:  p.ValidFrom,
		ValidUntil: p.ValidUntil,

		IssuerURL:       p.Issuer.Website,
		IssuerEmail:     p.Issuer.Email,
		IssuerName:      p.Issuer.Name,
		IssuerDID:       p.Issuer.DID,
		IssuerID:        p.Issuer.ProfileLink,
		RevocationList:  p.Issuer.RevocationList,
		IssuerPublicKey: ECDSAKoblitzPubkeyPrefix + p.Issuer.CryptoAddress,

		SubjectDID:     p.Subject.DID,
		SubjectProfile: p.Subject.ProfileLink,

		CertificateTitle: p.Subject.Title,
		Roster:           p.RecordsJSON,

		IssuerLogoFile: p.IssuerImage,
		CertImageFile:  p.SubjectImage,

		AdditionalGlobalFields:       globalFields,
		AdditionalPerRecipientFields: recipientFields,

		CertificateDescription: fmt.Sprintf("Certificates are generated by %s.", p.AppName),
		CriteriaNarrative:      criteriaNarrative,
		FilenameFormat:         "uuid",
		NoClobber:              true,
		HashEmails:             false,
	}, nil
}

// CreateCertificateTemplate projects a base template into the nested
// assertion document. The issuanceDate and certificate id remain
// placeholder tokens for the signer to resolve.
func (g *Generator) CreateCertificateTemplate(data BaseTemplate) (AssertionDocument, error) {
	assertion := AssertionDocument{
		"@context": []string{
			VerifiableCredentialV2Context,
			EveryCREDCredentialV1Context,
			CredentialExamplesV1Context,
		},
		"type": []string{"VerifiableCredential", "EveryCREDCredential"},
		"issuer": map[string]any{
			"id":      data.IssuerDID,
			"profile": data.IssuerID,
		},
		"issuanceDate": PlaceholderIssuanceDate,
	}

	// Schema validators reject null date fields, so absent values are
	// omitted rather than set.
	if data.ValidFrom != "" {
		assertion["validFrom"] = data.ValidFrom
	}
	if data.ValidUntil != "" {
		assertion["validUntil"] = data.ValidUntil
	}

	assertion["id"] = URNUUIDPrefix + string(PlaceholderCertUID)

	assertion["credentialSubject"] = map[string]any{
		"id":      data.SubjectDID,
		"profile": data.SubjectProfile,
	}

	globalFields, err := decodeFieldsPayload(data.AdditionalGlobalFields)
	if err != nil {
		return nil, fmt.Errorf("decode additional global fields: %w", err)
	}

	// Recipient fields feed a per-recipient stage further down the
	// pipeline; they are decoded here so malformed payloads fail before
	// any document leaves this stage.
	if _, err := decodeFieldsPayload(data.AdditionalPerRecipientFields); err != nil {
		return nil, fmt.Errorf("decode additional per-recipient fields: %w", err)
	}

	return g.mergeFields(assertion, globalFields)
}

func (g *Generator) mergeFields(doc AssertionDocument, specs []FieldSpec) (AssertionDocument, error) {
	if g.policy == MergeLegacySecond {
		if len(specs) < 2 {
			return doc, nil
		}
		specs = specs[1:2]
	}

	var err error
	for _, spec := range specs {
		if doc, err = SetField(doc, spec.Path, spec.Value); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func decodeFieldsPayload(raw json.RawMessage) ([]FieldSpec, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var payload fieldsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return payload.Fields, nil
}
