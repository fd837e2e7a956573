package api

import (
	"encoding/json"
)

const (
	CertificateStatusPending CertificateStatus = "PENDING"
	CertificateStatusDone    CertificateStatus = "DONE"
)

type ErrorResp struct {
	Error string `json:"error"`
}

type CertificateStatus string

type GenerateCertRequest struct {
	Subject SubjectPayload `json:"subject" validate:"required"`

	RecordsJSON  string `json:"records_json"`
	IssuerImage  string `json:"issuer_image"`
	SubjectImage string `json:"subject_image"`

	// Both payloads are expected to look like {"fields": [{"path": ..., "value": ...}]}.
	GlobalFields    json.RawMessage `json:"additional_global_fields"`
	RecipientFields json.RawMessage `json:"additional_per_recipient_fields"`

	ValidFrom  string `json:"valid_from"`
	ValidUntil string `json:"valid_until"`
}

type SubjectPayload struct {
	Title       string `json:"title" validate:"required,lte=256"`
	DID         string `json:"did" validate:"required"`
	ProfileLink string `json:"profile_link" validate:"required,url"`
}

type GetCertRequest struct {
	CertificateID string `json:"certificate_id" validate:"required,uuid4"`
}

type GenerateCertResponse struct {
	CertificateID string            `json:"certificate_id"`
	Status        CertificateStatus `json:"status"`
}

type GetCertResponse struct {
	Status      CertificateStatus `json:"status"`
	Certificate json.RawMessage   `json:"certificate"`
}
