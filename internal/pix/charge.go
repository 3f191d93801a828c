package pix

import (
	"strings"
	"time"
)

// Charge is the record handed to rendering and transport surfaces: the
// request inputs after normalization plus the generated BR Code.
type Charge struct {
	MerchantName  string     `json:"merchantName"`
	MerchantCity  string     `json:"merchantCity"`
	Key           string     `json:"key"`
	KeyType       KeyType    `json:"keyType,omitempty"`
	KeyConfidence Confidence `json:"keyConfidence"`
	Amount        float64    `json:"amount"`
	TransactionID string     `json:"transactionId"`
	Code          string     `json:"brCode"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// NewCharge builds the BR Code for the request and wraps it in a Charge
// stamped with the current time.
func NewCharge(req Request) (Charge, error) {
	p, err := Build(req)
	if err != nil {
		return Charge{}, err
	}
	return Charge{
		MerchantName:  sanitizeOrDefault(req.Merchant.Name, MaxMerchantNameLen, DefaultMerchantName),
		MerchantCity:  sanitizeOrDefault(req.Merchant.City, MaxMerchantCityLen, DefaultMerchantCity),
		Key:           p.Key,
		KeyType:       req.Key.Type,
		KeyConfidence: p.KeyConfidence,
		Amount:        req.Amount,
		TransactionID: sanitizeOrDefault(req.TransactionID, MaxTransactionIDLen, DefaultTransactionID),
		Code:          p.Code,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// Guessed reports whether key normalization had to assume missing digits.
func (c Charge) Guessed() bool {
	return c.KeyConfidence == ConfidenceGuessed
}

// ParseKeyType maps a user-supplied type tag onto the known enumeration.
// The empty string is accepted: the type is only a hint.
func ParseKeyType(s string) (KeyType, bool) {
	switch KeyType(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", true
	case KeyTypeCPF:
		return KeyTypeCPF, true
	case KeyTypeCNPJ:
		return KeyTypeCNPJ, true
	case KeyTypeEmail:
		return KeyTypeEmail, true
	case KeyTypePhone:
		return KeyTypePhone, true
	case KeyTypeRandom:
		return KeyTypeRandom, true
	default:
		return "", false
	}
}
