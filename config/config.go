package config

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/jayswal433/unsigned-gen/internal/schema"
)

type Config struct {
	APIConf APIConf    `yaml:"APIConf"`
	App     AppConf    `yaml:"App"`
	Issuer  IssuerConf `yaml:"Issuer"`
}

type APIConf struct {
	Port string `yaml:"Port" default:"8081"`
	Host string `yaml:"Host" default:"0.0.0.0"`
}

type AppConf struct {
	Name string `yaml:"Name"`
}

// IssuerConf is the issuer identity served by this deployment. One issuer
// per instance; subjects arrive per request.
type IssuerConf struct {
	Name           string         `yaml:"Name"`
	Website        string         `yaml:"Website"`
	Email          string         `yaml:"Email"`
	DID            string         `yaml:"DID"`
	ProfileLink    string         `yaml:"ProfileLink"`
	RevocationList string         `yaml:"RevocationList"`
	CryptoAddress  common.Address `yaml:"CryptoAddress"`
}

// Issuer converts the configured identity into the generator's value object.
// The crypto address is rendered as a lower-case hex string.
func (c IssuerConf) Issuer() schema.Issuer {
	return schema.Issuer{
		Name:           c.Name,
		Website:        c.Website,
		Email:          c.Email,
		DID:            c.DID,
		ProfileLink:    c.ProfileLink,
		RevocationList: c.RevocationList,
		CryptoAddress:  strings.ToLower(c.CryptoAddress.Hex()),
	}
}
