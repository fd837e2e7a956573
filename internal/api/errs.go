package api

import "fmt"

var (
	ErrParsReq        = fmt.Errorf("parsing request failed")
	ErrGenerateData   = fmt.Errorf("generating unsigned certificate data failed")
	ErrProjectCert    = fmt.Errorf("creating certificate template failed")
	ErrCertNotFound   = fmt.Errorf("certificate not found")
	ErrReadCertStatus = fmt.Errorf("reading cert status failed")
	ErrAddCertToDB    = fmt.Errorf("adding cert to DB failed")
)
