package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/jayswal433/unsigned-gen/internal/schema"
	"github.com/jayswal433/unsigned-gen/internal/taskqueue"
	"github.com/jayswal433/unsigned-gen/internal/unsigned"
)

// emptyFieldsPayload is substituted when a request omits an extension payload.
var emptyFieldsPayload = json.RawMessage(`{"fields": []}`)

type Handlers struct {
	inMem     *badger.DB
	generator *unsigned.Generator
	queue     *taskqueue.Queue
	issuer    schema.Issuer
	appName   string
}

func NewHandlers(generator *unsigned.Generator,
	mem *badger.DB,
	queue *taskqueue.Queue,
	issuer schema.Issuer,
	appName string) *Handlers {
	return &Handlers{
		inMem:     mem,
		generator: generator,
		queue:     queue,
		issuer:    issuer,
		appName:   appName,
	}
}

func (h *Handlers) GenerateCert(c echo.Context) error {
	var req GenerateCertRequest

	if err := c.Bind(&req); err != nil {
		log.WithError(err).Error("bind gen cert request")
		return c.JSON(http.StatusBadRequest, ErrorResp{
			Error: fmt.Sprintf("%v: %v", err, ErrParsReq),
		})
	}

	log.
		WithField("subjectDID", req.Subject.DID).
		WithField("certificateTitle", req.Subject.Title).
		Info("request")

	if err := c.Validate(req); err != nil {
		log.WithError(err).Error("validate gen cert request")
		return c.JSON(http.StatusBadRequest, ErrorResp{
			Error: err.Error(),
		})
	}

	globalFields := req.GlobalFields
	if len(globalFields) == 0 {
		globalFields = emptyFieldsPayload
	}
	recipientFields := req.RecipientFields
	if len(recipientFields) == 0 {
		recipientFields = emptyFieldsPayload
	}

	data, err := h.generator.GenerateUnsignedCertData(unsigned.Params{
		Issuer: h.issuer,
		Subject: schema.Subject{
			Title:       req.Subject.Title,
			DID:         req.Subject.DID,
			ProfileLink: req.Subject.ProfileLink,
		},
		RecordsJSON:     req.RecordsJSON,
		IssuerImage:     req.IssuerImage,
		SubjectImage:    req.SubjectImage,
		GlobalFields:    globalFields,
		AppName:         h.appName,
		RecipientFields: recipientFields,
		ValidFrom:       req.ValidFrom,
		ValidUntil:      req.ValidUntil,
	})
	if err != nil {
		log.WithError(err).Error(ErrGenerateData)
		return c.JSON(http.StatusInternalServerError, ErrorResp{
			Error: fmt.Sprintf("%v: %v", err, ErrGenerateData),
		})
	}

	// Projection happens before the request returns so that malformed
	// extension payloads surface to the caller instead of a background log.
	assertion, err := h.generator.CreateCertificateTemplate(data)
	if err != nil {
		log.WithError(err).Error(ErrProjectCert)
		return c.JSON(http.StatusBadRequest, ErrorResp{
			Error: fmt.Sprintf("%v: %v", err, ErrProjectCert),
		})
	}

	certID := uuid.NewString()

	log.
		WithField("certificateID", certID).
		WithField("subjectDID", req.Subject.DID).
		Info("unsigned certificate data created")

	// set nil cert to certID key means
	// that certificate status is pending
	if err := addCertToDB(h.inMem, certID, nil); err != nil {
		log.WithError(err).Error(ErrAddCertToDB)
		return c.JSON(http.StatusInternalServerError, ErrorResp{
			Error: fmt.Sprintf("%v: %v", err, ErrAddCertToDB),
		})
	}

	h.queue.Add(taskqueue.NewTask(
		func() ([]byte, error) {
			b, err := json.Marshal(assertion)
			if err != nil {
				return nil, fmt.Errorf("marshal assertion document: %w", err)
			}
			if err := addCertToDB(h.inMem, certID, b); err != nil {
				return nil, err
			}
			return b, nil
		},
		func(_ []byte, err error) {
			if err != nil {
				log.WithError(err).
					WithField("certificateID", certID).
					Error("storing assertion document")
				return
			}
			log.WithField("certificateID", certID).
				Info("assertion document added to db")
		},
		badger.ErrConflict,
	))

	return c.JSON(http.StatusOK, GenerateCertResponse{
		CertificateID: certID,
		Status:        CertificateStatusPending,
	})
}

func (h *Handlers) GetCert(c echo.Context) error {
	var req GetCertRequest

	if err := c.Bind(&req); err != nil {
		log.WithError(err).Error("bind get cert request")
		return c.JSON(http.StatusBadRequest, ErrorResp{
			Error: fmt.Sprintf("%v: %v", err, ErrParsReq),
		})
	}

	log.
		WithField("certificateID", req.CertificateID).
		Info("request")

	if err := c.Validate(req); err != nil {
		log.WithError(err).Error("validate get cert request")
		return c.JSON(http.StatusBadRequest, ErrorResp{
			Error: err.Error(),
		})
	}

	certificate, err := readCertFromDB(h.inMem, req.CertificateID)
	if errors.Is(err, ErrCertNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResp{
			Error: ErrCertNotFound.Error(),
		})
	}
	if err != nil {
		log.WithError(err).Error(ErrReadCertStatus)
		return c.JSON(http.StatusInternalServerError, ErrorResp{
			Error: fmt.Sprintf("%v: %v", ErrReadCertStatus, err),
		})
	}

	// if certID key exists but certificate is empty
	// means certificate status is pending
	if len(certificate) == 0 {
		return c.JSON(http.StatusOK, GetCertResponse{
			Certificate: nil,
			Status:      CertificateStatusPending,
		})
	}

	return c.JSON(http.StatusOK, GetCertResponse{
		Certificate: json.RawMessage(certificate),
		Status:      CertificateStatusDone,
	})
}
