package server

import (
	"errors"
	"fmt"
	"strings"

	"example.com/pixgate/internal/pix"
	"example.com/pixgate/internal/report"
)

// MerchantOptions carries the merchant identity embedded in every payload
// generated by this deployment.
type MerchantOptions struct {
	Name string
	City string
}

// Options configures server creation.
type Options struct {
	Merchant MerchantOptions
	Key      string
	KeyType  string
	QRSize   int
}

// normalize validates the option set and fills defaults. The configured key
// may be empty: then every request must carry its own.
func (o Options) normalize() (Options, pix.KeyType, error) {
	kt, ok := pix.ParseKeyType(o.KeyType)
	if !ok {
		return o, "", fmt.Errorf("unknown key type %q", o.KeyType)
	}
	if o.QRSize < 0 {
		return o, "", errors.New("qr size must not be negative")
	}
	if o.QRSize == 0 {
		o.QRSize = report.DefaultQRSize
	}
	o.Key = strings.TrimSpace(o.Key)
	o.Merchant.Name = strings.TrimSpace(o.Merchant.Name)
	o.Merchant.City = strings.TrimSpace(o.Merchant.City)
	return o, kt, nil
}
