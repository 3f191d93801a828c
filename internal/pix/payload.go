package pix

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EMV-MPM data object ids used by the static BR Code layout.
const (
	idPayloadFormat    = "00"
	idInitiationMethod = "01"
	idMerchantAccount  = "26"
	idMerchantCategory = "52"
	idCurrency         = "53"
	idAmount           = "54"
	idCountryCode      = "58"
	idMerchantName     = "59"
	idMerchantCity     = "60"
	idAdditionalData   = "62"
	idCRC              = "63"

	subGUI           = "00"
	subKey           = "01"
	subTransactionID = "05"
)

const (
	payloadFormatIndicator = "01"
	initiationStatic       = "11"
	merchantCategoryNone   = "0000"
	currencyBRL            = "986"
	countryBrazil          = "BR"
	pixGUI                 = "br.gov.bcb.pix"
)

// Fallbacks applied when merchant fields sanitize to nothing.
const (
	DefaultMerchantName  = "ESTABELECIMENTO"
	DefaultMerchantCity  = "SAO PAULO"
	DefaultTransactionID = "***"
)

// Merchant is the display identity embedded in the payload.
type Merchant struct {
	Name string
	City string
}

// Request carries everything needed to build one static BR Code.
type Request struct {
	Key           Key
	Merchant      Merchant
	Amount        float64
	TransactionID string
}

// Payload is the result of a successful build: the BR Code string plus the
// normalized key and how confidently it was normalized.
type Payload struct {
	Code          string
	Key           string
	KeyConfidence Confidence
}

// ValidationError reports an input that cannot produce a well-formed payload.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

var (
	ErrEmptyKey       = &ValidationError{Reason: "pix key required"}
	ErrNegativeAmount = &ValidationError{Reason: "amount must be non-negative"}
	ErrInvalidAmount  = &ValidationError{Reason: "amount must be a finite number"}
)

// Build assembles the static merchant-presented BR Code for the request.
// The output is either a complete payload with a valid CRC trailer or an
// error; a partial string is never returned.
func Build(req Request) (Payload, error) {
	if strings.TrimSpace(req.Key.Value) == "" {
		return Payload{}, ErrEmptyKey
	}
	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return Payload{}, ErrInvalidAmount
	}
	if req.Amount < 0 {
		return Payload{}, ErrNegativeAmount
	}

	key, conf := NormalizeKey(req.Key.Value)

	name := sanitizeOrDefault(req.Merchant.Name, MaxMerchantNameLen, DefaultMerchantName)
	city := sanitizeOrDefault(req.Merchant.City, MaxMerchantCityLen, DefaultMerchantCity)
	txid := sanitizeOrDefault(req.TransactionID, MaxTransactionIDLen, DefaultTransactionID)

	account, err := encodeMerchantAccount(key)
	if err != nil {
		return Payload{}, err
	}
	additional, err := encodeAdditionalData(txid)
	if err != nil {
		return Payload{}, err
	}

	var b strings.Builder
	add := func(id, value string) error {
		encoded, err := EncodeField(id, value)
		if err != nil {
			return err
		}
		b.WriteString(encoded)
		return nil
	}
	if err := add(idPayloadFormat, payloadFormatIndicator); err != nil {
		return Payload{}, err
	}
	if err := add(idInitiationMethod, initiationStatic); err != nil {
		return Payload{}, err
	}
	b.WriteString(account)
	if err := add(idMerchantCategory, merchantCategoryNone); err != nil {
		return Payload{}, err
	}
	if err := add(idCurrency, currencyBRL); err != nil {
		return Payload{}, err
	}
	if err := add(idAmount, strconv.FormatFloat(req.Amount, 'f', 2, 64)); err != nil {
		return Payload{}, err
	}
	if err := add(idCountryCode, countryBrazil); err != nil {
		return Payload{}, err
	}
	if err := add(idMerchantName, name); err != nil {
		return Payload{}, err
	}
	if err := add(idMerchantCity, city); err != nil {
		return Payload{}, err
	}
	b.WriteString(additional)

	// The CRC covers everything written so far plus its own id and length
	// tag; the 4 hex digits are appended after computation.
	b.WriteString(idCRC + "04")
	code := b.String()
	code += ChecksumHex(code)

	return Payload{Code: code, Key: key, KeyConfidence: conf}, nil
}

// encodeMerchantAccount nests the PIX arrangement GUI and the key under
// field 26. The registry form's leading plus is stripped: the protocol value
// must never carry one.
func encodeMerchantAccount(key string) (string, error) {
	gui, err := EncodeField(subGUI, pixGUI)
	if err != nil {
		return "", err
	}
	keyField, err := EncodeField(subKey, strings.TrimPrefix(key, "+"))
	if err != nil {
		return "", fmt.Errorf("merchant account: %w", err)
	}
	return EncodeTemplate(idMerchantAccount, gui, keyField)
}

func sanitizeOrDefault(s string, maxLen int, fallback string) string {
	if out := Sanitize(s, maxLen); out != "" {
		return out
	}
	return fallback
}

func encodeAdditionalData(txid string) (string, error) {
	ref, err := EncodeField(subTransactionID, txid)
	if err != nil {
		return "", fmt.Errorf("additional data: %w", err)
	}
	return EncodeTemplate(idAdditionalData, ref)
}
