package pacing

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadLedger opens, decodes and names a ledger from a file path. A missing
// file is not an error: it yields an empty ledger, so the first recorded
// transaction creates the file.
func LoadLedger(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		l := NewLedger()
		l.name = ledgerName(path)
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", path, err)
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", path, err)
	}
	ledger.name = ledgerName(path)
	return ledger, nil
}

// SaveLedger persists the ledger to the given file path in canonical JSONL
// form, creating parent directories as needed.
func SaveLedger(path string, ledger *Ledger) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create directory for ledger %q: %w", path, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", path, err)
	}
	defer file.Close()

	return EncodeLedger(file, ledger)
}

// ledgerName derives a ledger name from its file path: the base name
// without the .jsonl extension.
func ledgerName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".jsonl")
}
