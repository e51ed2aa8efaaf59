package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/Cheertaboi/voucher-service/internal/models"
)

// VoucherService is what the handler needs from the service layer.
type VoucherService interface {
	CreateVoucher(ctx context.Context, code string, discount int) error
	ApplyVoucher(ctx context.Context, code string, amount float64) (models.ApplyResult, error)
	GetVoucher(ctx context.Context, code string) (*models.Voucher, error)
}

type errorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

type VoucherHandler struct {
	service VoucherService
}

func NewVoucherHandler(svc VoucherService) *VoucherHandler {
	return &VoucherHandler{service: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := models.AsAppError(err)
	if !ok {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error", Type: "internal_error"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Type {
	case models.ErrorTypeConflict:
		status = http.StatusConflict
	case models.ErrorTypeNotFound:
		status = http.StatusNotFound
	case models.ErrorTypeUnprocessable:
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, errorResponse{Error: appErr.Message, Type: string(appErr.Type)})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_body", Type: "bad_request"})
		return false
	}
	return true
}

// --- Handlers ---

// CreateVoucher handles POST /vouchers
func (h *VoucherHandler) CreateVoucher(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVoucherRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.CreateVoucher(r.Context(), req.Code, req.Discount); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// ApplyVoucher handles POST /vouchers/apply
func (h *VoucherHandler) ApplyVoucher(w http.ResponseWriter, r *http.Request) {
	var req models.ApplyVoucherRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.service.ApplyVoucher(r.Context(), req.Code, req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetVoucher handles GET /vouchers/{code}. The code is trimmed the same way
// request bodies are.
func (h *VoucherHandler) GetVoucher(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	v, err := h.service.GetVoucher(r.Context(), code)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
