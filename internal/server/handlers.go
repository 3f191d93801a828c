package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"example.com/pixgate/internal/pix"
	"example.com/pixgate/internal/report"
)

// Server exposes BR Code generation over HTTP, pre-configured with the
// deployment's merchant identity and PIX key.
type Server struct {
	merchant pix.Merchant
	key      string
	keyType  pix.KeyType
	qrSize   int
}

// NewServer constructs a Server from the supplied options.
func NewServer(opts Options) (*Server, error) {
	normalized, keyType, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	return &Server{
		merchant: pix.Merchant{Name: normalized.Merchant.Name, City: normalized.Merchant.City},
		key:      normalized.Key,
		keyType:  keyType,
		qrSize:   normalized.QRSize,
	}, nil
}

type chargeRequest struct {
	Key           string   `json:"key,omitempty"`
	KeyType       string   `json:"keyType,omitempty"`
	MerchantName  string   `json:"merchantName,omitempty"`
	MerchantCity  string   `json:"merchantCity,omitempty"`
	Amount        *float64 `json:"amount"`
	TransactionID string   `json:"transactionId,omitempty"`
}

// resolve merges the request with the deployment defaults into a build
// request. Request fields win over configured ones.
func (s *Server) resolve(req chargeRequest) (pix.Request, error) {
	key := strings.TrimSpace(req.Key)
	keyType := s.keyType
	if key == "" {
		key = s.key
	} else {
		kt, ok := pix.ParseKeyType(req.KeyType)
		if !ok {
			return pix.Request{}, fmt.Errorf("unknown key type %q", req.KeyType)
		}
		keyType = kt
	}
	merchant := s.merchant
	if req.MerchantName != "" {
		merchant.Name = req.MerchantName
	}
	if req.MerchantCity != "" {
		merchant.City = req.MerchantCity
	}
	if req.Amount == nil {
		return pix.Request{}, errors.New("amount required")
	}
	return pix.Request{
		Key:           pix.Key{Type: keyType, Value: key},
		Merchant:      merchant,
		Amount:        *req.Amount,
		TransactionID: req.TransactionID,
	}, nil
}

func (s *Server) handleCharge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req chargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid json: %v", err), http.StatusBadRequest)
		return
	}
	buildReq, err := s.resolve(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ch, err := pix.NewCharge(buildReq)
	if err != nil {
		http.Error(w, err.Error(), chargeErrorStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	req := chargeRequest{
		Key:           q.Get("key"),
		KeyType:       q.Get("keyType"),
		MerchantName:  q.Get("name"),
		MerchantCity:  q.Get("city"),
		TransactionID: q.Get("txid"),
	}
	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid amount: %v", err), http.StatusBadRequest)
		return
	}
	req.Amount = &amount
	size := s.qrSize
	if v := q.Get("size"); v != "" {
		size, err = strconv.Atoi(v)
		if err != nil || size <= 0 {
			http.Error(w, "invalid size", http.StatusBadRequest)
			return
		}
	}
	buildReq, err := s.resolve(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := pix.Build(buildReq)
	if err != nil {
		http.Error(w, err.Error(), chargeErrorStatus(err))
		return
	}
	png, err := report.PayloadToQR(p.Code, size)
	if err != nil {
		http.Error(w, fmt.Sprintf("render qr: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Write(png)
}

type validateResponse struct {
	Valid  bool        `json:"valid"`
	Error  string      `json:"error,omitempty"`
	Fields []pix.Field `json:"fields,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid json: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		http.Error(w, "code required", http.StatusBadRequest)
		return
	}
	resp := validateResponse{}
	if err := pix.VerifyPayload(req.Code); err != nil {
		resp.Error = err.Error()
	} else {
		resp.Valid = true
	}
	if fields, err := pix.ParsePayload(req.Code); err == nil {
		resp.Fields = fields
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// chargeErrorStatus maps build failures onto HTTP statuses: validation
// problems are the caller's fault, anything else is ours.
func chargeErrorStatus(err error) int {
	var verr *pix.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
