package syncserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/djb242/inkwell/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()
	db, err := Connect(filepath.Join(t.TempDir(), "sync.db"))
	require.NoError(t, err)

	cfg := Config{JWTSecret: "test-secret"}
	srv := httptest.NewServer(NewRouter(cfg, db, NewJWT(cfg.JWTSecret)))
	t.Cleanup(srv.Close)
	return srv, db
}

type tokenResp struct {
	Token     string `json:"token"`
	AccountID string `json:"account_id"`
}

func register(t *testing.T, srv *httptest.Server, email, password string) tokenResp {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := http.Post(srv.URL+"/auth/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tr tokenResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tr))
	require.NotEmpty(t, tr.Token)
	require.NotEmpty(t, tr.AccountID)
	return tr
}

func doJSON(t *testing.T, method, url, token string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// ============================================================
// Health
// ============================================================

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// ============================================================
// Auth
// ============================================================

func TestRegisterAndLogin(t *testing.T) {
	srv, _ := newTestServer(t)
	tr := register(t, srv, "Writer@Example.com", "password123")

	// Email is normalized to lowercase, so login with lowercase works.
	body, _ := json.Marshal(map[string]string{"email": "writer@example.com", "password": "password123"})
	resp, err := http.Post(srv.URL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var lr tokenResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&lr))
	require.Equal(t, tr.AccountID, lr.AccountID)
}

func TestRegisterShortPassword(t *testing.T) {
	srv, _ := newTestServer(t)
	body, _ := json.Marshal(map[string]string{"email": "a@b.com", "password": "short"})
	resp, err := http.Post(srv.URL+"/auth/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv, _ := newTestServer(t)
	register(t, srv, "dup@example.com", "password123")

	body, _ := json.Marshal(map[string]string{"email": "dup@example.com", "password": "password456"})
	resp, err := http.Post(srv.URL+"/auth/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	srv, _ := newTestServer(t)
	register(t, srv, "w@example.com", "password123")

	body, _ := json.Marshal(map[string]string{"email": "w@example.com", "password": "wrongpass"})
	resp, err := http.Post(srv.URL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginUnknownEmail(t *testing.T) {
	srv, _ := newTestServer(t)
	body, _ := json.Marshal(map[string]string{"email": "nobody@example.com", "password": "password123"})
	resp, err := http.Post(srv.URL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ============================================================
// JWT
// ============================================================

func TestJWTRoundTrip(t *testing.T) {
	j := NewJWT("secret")
	token, err := j.Sign("acct-1")
	require.NoError(t, err)

	sub, err := j.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "acct-1", sub)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := NewJWT("secret-a").Sign("acct-1")
	require.NoError(t, err)

	_, err = NewJWT("secret-b").Verify(token)
	require.Error(t, err)
}

func TestJWTGarbage(t *testing.T) {
	_, err := NewJWT("secret").Verify("not.a.token")
	require.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	require.True(t, ComparePassword(hash, "correct horse"))
	require.False(t, ComparePassword(hash, "wrong horse"))
}

// ============================================================
// Document storage
// ============================================================

func docURL(srv *httptest.Server, accountID string) string {
	return srv.URL + "/v1/accounts/" + accountID + "/document"
}

func TestDocumentGetBeforePut(t *testing.T) {
	srv, _ := newTestServer(t)
	tr := register(t, srv, "d@example.com", "password123")

	resp := doJSON(t, http.MethodGet, docURL(srv, tr.AccountID), tr.Token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDocumentPutGetRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)
	tr := register(t, srv, "d@example.com", "password123")

	payload, err := store.EncodeDocument(store.Bundle{
		Projects:  []store.Project{{ID: "p1", Title: "Novel", Status: store.StatusDrafting}},
		DailyGoal: 900,
	})
	require.NoError(t, err)

	put := doJSON(t, http.MethodPut, docURL(srv, tr.AccountID), tr.Token, payload)
	put.Body.Close()
	require.Equal(t, http.StatusNoContent, put.StatusCode)

	get := doJSON(t, http.MethodGet, docURL(srv, tr.AccountID), tr.Token, nil)
	defer get.Body.Close()
	require.Equal(t, http.StatusOK, get.StatusCode)

	var doc store.Document
	require.NoError(t, json.NewDecoder(get.Body).Decode(&doc))
	require.Len(t, doc.Projects, 1)
	require.Equal(t, "Novel", doc.Projects[0].Title)
	require.Equal(t, 900, doc.DailyGoal)
	require.False(t, doc.UpdatedAt.IsZero(), "server should restamp updated_at")
}

func TestDocumentPutOverwrites(t *testing.T) {
	srv, _ := newTestServer(t)
	tr := register(t, srv, "d@example.com", "password123")

	first, _ := store.EncodeDocument(store.Bundle{DailyGoal: 500})
	second, _ := store.EncodeDocument(store.Bundle{DailyGoal: 1200})

	doJSON(t, http.MethodPut, docURL(srv, tr.AccountID), tr.Token, first).Body.Close()
	doJSON(t, http.MethodPut, docURL(srv, tr.AccountID), tr.Token, second).Body.Close()

	get := doJSON(t, http.MethodGet, docURL(srv, tr.AccountID), tr.Token, nil)
	defer get.Body.Close()

	var doc store.Document
	require.NoError(t, json.NewDecoder(get.Body).Decode(&doc))
	require.Equal(t, 1200, doc.DailyGoal, "last write should win")
}

func TestDocumentPutInvalidPayload(t *testing.T) {
	srv, _ := newTestServer(t)
	tr := register(t, srv, "d@example.com", "password123")

	resp := doJSON(t, http.MethodPut, docURL(srv, tr.AccountID), tr.Token, []byte("{broken"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDocumentPutFutureVersionRejected(t *testing.T) {
	srv, _ := newTestServer(t)
	tr := register(t, srv, "d@example.com", "password123")

	resp := doJSON(t, http.MethodPut, docURL(srv, tr.AccountID), tr.Token, []byte(`{"version":99}`))
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ============================================================
// Authorization boundaries
// ============================================================

func TestDocumentRequiresToken(t *testing.T) {
	srv, _ := newTestServer(t)
	tr := register(t, srv, "d@example.com", "password123")

	resp := doJSON(t, http.MethodGet, docURL(srv, tr.AccountID), "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDocumentForeignAccountForbidden(t *testing.T) {
	srv, _ := newTestServer(t)
	alice := register(t, srv, "alice@example.com", "password123")
	bob := register(t, srv, "bob@example.com", "password123")

	payload, _ := store.EncodeDocument(store.Bundle{DailyGoal: 700})
	doJSON(t, http.MethodPut, docURL(srv, alice.AccountID), alice.Token, payload).Body.Close()

	// Bob's token against Alice's document path.
	get := doJSON(t, http.MethodGet, docURL(srv, alice.AccountID), bob.Token, nil)
	defer get.Body.Close()
	require.Equal(t, http.StatusForbidden, get.StatusCode)

	put := doJSON(t, http.MethodPut, docURL(srv, alice.AccountID), bob.Token, payload)
	defer put.Body.Close()
	require.Equal(t, http.StatusForbidden, put.StatusCode)
}
