package export

import (
	"fmt"
	"os"

	"github.com/djb242/inkwell/internal/store"
)

// WriteJSON serializes the full bundle as a versioned document file.
func WriteJSON(b store.Bundle, path string) error {
	data, err := store.EncodeDocument(b)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// ReadJSON parses a previously exported file. A parse failure leaves the
// caller's state untouched; on success the returned bundle has the
// missing-field defaults applied and replaces state wholesale.
func ReadJSON(path string) (store.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return store.Bundle{}, fmt.Errorf("read import file: %w", err)
	}
	return store.DecodeDocument(data)
}
