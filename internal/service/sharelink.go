package service

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jask/moneyflow/internal/ledger"
	"github.com/jask/moneyflow/internal/model"
)

// State is the full shareable session: all three collections' contents.
type State struct {
	Paychecks   []model.Paycheck   `json:"paychecks"`
	Expenses    []model.Expense    `json:"expenses"`
	Allocations []model.Allocation `json:"allocations"`
}

// Snapshot captures current collection contents as a State.
func Snapshot(paychecks *ledger.Paychecks, expenses *ledger.Expenses, allocations *ledger.Allocations) State {
	return State{
		Paychecks:   paychecks.Items(),
		Expenses:    expenses.Items(),
		Allocations: allocations.Items(),
	}
}

// EncodeShareLink packs a State into a compressed, URL-safe token suitable
// for a query parameter.
func EncodeShareLink(state State) (string, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := w.Write(payload); err != nil {
		return "", fmt.Errorf("compress state: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("compress state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeShareLink unpacks a token produced by EncodeShareLink.
func DecodeShareLink(token string) (State, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return State{}, fmt.Errorf("decode share link: %w", err)
	}
	r := flate.NewReader(bytes.NewReader(raw))
	defer r.Close()
	payload, err := io.ReadAll(r)
	if err != nil {
		return State{}, fmt.Errorf("decompress share link: %w", err)
	}
	var state State
	if err := json.Unmarshal(payload, &state); err != nil {
		return State{}, fmt.Errorf("decode state: %w", err)
	}
	return state, nil
}

// Sideload replaces all three collections' contents with the shared state.
// Each replacement is one committed mutation.
func Sideload(state State, paychecks *ledger.Paychecks, expenses *ledger.Expenses, allocations *ledger.Allocations) {
	paychecks.Replace(state.Paychecks)
	expenses.Replace(state.Expenses)
	allocations.Replace(state.Allocations)
}
