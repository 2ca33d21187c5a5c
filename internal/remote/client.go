// Package remote speaks the account-scoped document API: one JSON document
// per account, readable and replaceable as a unit.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/djb242/inkwell/internal/store"
)

// ErrNotFound reports that the account has no stored document yet. It is
// an expected condition, distinguished from transport and server failures.
var ErrNotFound = errors.New("no document for account")

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) documentURL(accountID string) string {
	return fmt.Sprintf("%s/v1/accounts/%s/document", c.baseURL, accountID)
}

// Fetch reads the account's stored bundle. A missing document returns
// ErrNotFound.
func (c *Client) Fetch(ctx context.Context, accountID string) (store.Bundle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.documentURL(accountID), nil)
	if err != nil {
		return store.Bundle{}, fmt.Errorf("build fetch request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return store.Bundle{}, fmt.Errorf("fetch document: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return store.Bundle{}, ErrNotFound
	default:
		return store.Bundle{}, fmt.Errorf("fetch document: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return store.Bundle{}, fmt.Errorf("read document body: %w", err)
	}
	return store.DecodeDocument(data)
}

// Upsert replaces the account's document with the given bundle, stamping a
// fresh updated_at. Insert-or-replace; last write wins at the server.
func (c *Client) Upsert(ctx context.Context, accountID string, b store.Bundle) error {
	data, err := store.EncodeDocument(b)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.documentURL(accountID), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build upsert request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("upsert document: unexpected status %d", resp.StatusCode)
	}
	return nil
}
