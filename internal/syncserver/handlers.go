package syncserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/djb242/inkwell/internal/store"
)

type AuthHandler struct {
	DB  *gorm.DB
	JWT *JWT
}

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || len(req.Password) < 8 {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	a := Account{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.DB.Create(&a).Error; err != nil {
		http.Error(w, "email already used", http.StatusConflict)
		return
	}

	h.writeToken(w, a.ID)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	var a Account
	if err := h.DB.Where("email = ?", req.Email).First(&a).Error; err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !ComparePassword(a.PasswordHash, req.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	h.writeToken(w, a.ID)
}

func (h *AuthHandler) writeToken(w http.ResponseWriter, accountID string) {
	token, err := h.JWT.Sign(accountID)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"token":      token,
		"account_id": accountID,
	})
}

type DocumentHandler struct {
	DB *gorm.DB
}

// requireOwnAccount enforces that the token subject matches the account in
// the path.
func requireOwnAccount(w http.ResponseWriter, r *http.Request) (string, bool) {
	accountID := chi.URLParam(r, "accountID")
	tokenID, ok := AccountIDFromContext(r.Context())
	if !ok || tokenID != accountID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", false
	}
	return accountID, true
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireOwnAccount(w, r)
	if !ok {
		return
	}

	var doc AccountDocument
	err := h.DB.First(&doc, "account_id = ?", accountID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc.Payload))
}

func (h *DocumentHandler) Put(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireOwnAccount(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	// Validate the payload and restamp updated_at server-side.
	bundle, err := store.DecodeDocument(body)
	if err != nil {
		http.Error(w, "bad document", http.StatusBadRequest)
		return
	}
	payload, err := store.EncodeDocument(bundle)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	doc := AccountDocument{
		AccountID: accountID,
		Payload:   string(payload),
		UpdatedAt: time.Now().UTC(),
	}
	err = h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
