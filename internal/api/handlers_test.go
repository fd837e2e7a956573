package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/jayswal433/unsigned-gen/internal/schema"
	"github.com/jayswal433/unsigned-gen/internal/taskqueue"
	"github.com/jayswal433/unsigned-gen/internal/unsigned"
)

func newTestServer(t *testing.T) (*Server, *echo.Echo) {
	t.Helper()

	opt := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opt)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	queue := taskqueue.NewQueue(1)
	t.Cleanup(queue.Close)

	issuer := schema.Issuer{
		Name:           "Test Issuer",
		Website:        "https://issuer.example.com",
		Email:          "issuer@example.com",
		DID:            "did:example:123",
		ProfileLink:    "https://issuer.example.com/profile",
		RevocationList: "https://issuer.example.com/revocation",
		CryptoAddress:  "123abc",
	}

	srv := NewServer(unsigned.NewGenerator(), db, queue, issuer, "TestApp")
	return srv, srv.makeEcho()
}

func doJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const generateBody = `{
	"subject": {
		"title": "Test Certificate",
		"did": "did:example:456",
		"profile_link": "https://subject.example.com/profile"
	},
	"records_json": "{\"records\": []}",
	"issuer_image": "path/to/issuer_image.png",
	"subject_image": "path/to/subject_image.png",
	"valid_until": "2030-01-01"
}`

func TestGenerateAndGetCert(t *testing.T) {
	srv, e := newTestServer(t)

	rec := doJSON(e, "/cert/generate", generateBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var genResp GenerateCertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &genResp))
	require.Equal(t, CertificateStatusPending, genResp.Status)

	_, err := uuid.Parse(genResp.CertificateID)
	require.NoError(t, err)

	srv.queue.Wait()

	rec = doJSON(e, "/cert/get", `{"certificate_id": "`+genResp.CertificateID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var getResp GetCertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &getResp))
	require.Equal(t, CertificateStatusDone, getResp.Status)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(getResp.Certificate, &doc))
	require.Equal(t, "did:example:123", doc["issuer"].(map[string]any)["id"])
	require.Equal(t, "did:example:456", doc["credentialSubject"].(map[string]any)["id"])
	require.Equal(t, "*|DATE|*", doc["issuanceDate"])
	require.Equal(t, "urn:uuid:*|CERTUID|*", doc["id"])
	require.Equal(t, "2030-01-01", doc["validUntil"])
	require.NotContains(t, doc, "validFrom")
}

func TestGenerateCertValidation(t *testing.T) {
	_, e := newTestServer(t)

	rec := doJSON(e, "/cert/generate", `{"subject": {"title": "No DID"}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateCertMalformedGlobalFields(t *testing.T) {
	_, e := newTestServer(t)

	body := `{
		"subject": {
			"title": "Test Certificate",
			"did": "did:example:456",
			"profile_link": "https://subject.example.com/profile"
		},
		"additional_global_fields": {"fields": "not-a-list"}
	}`

	rec := doJSON(e, "/cert/generate", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Error, ErrProjectCert.Error())
}

func TestGetCertUnknownID(t *testing.T) {
	_, e := newTestServer(t)

	rec := doJSON(e, "/cert/get", `{"certificate_id": "`+uuid.NewString()+`"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
