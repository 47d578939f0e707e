package valutatrade

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps all state under one data directory:
//
//	rates.json       rate cache snapshot
//	portfolios.json  balances by user
//	users.json       accounts
//	trades.jsonl     append-only trade journal
//	.session         username of the logged-in user
//
// Snapshots are written to a temp file and renamed into place, so a crash
// mid-write leaves the previous snapshot intact. A missing file reads as
// empty state, never as an error.
type FileStore struct {
	dir string
}

// NewFileStore opens (creating if needed) a store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &PersistenceError{Op: "create", Path: dir, Err: err}
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store's data directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) ratesPath() string      { return filepath.Join(s.dir, "rates.json") }
func (s *FileStore) portfoliosPath() string { return filepath.Join(s.dir, "portfolios.json") }
func (s *FileStore) usersPath() string      { return filepath.Join(s.dir, "users.json") }
func (s *FileStore) tradesPath() string     { return filepath.Join(s.dir, "trades.jsonl") }
func (s *FileStore) sessionPath() string    { return filepath.Join(s.dir, ".session") }

// LoadRates reads the rate snapshot, returning an empty cache when the file
// is missing or corrupt.
func (s *FileStore) LoadRates() (*RateCache, error) {
	data, err := os.ReadFile(s.ratesPath())
	if errors.Is(err, fs.ErrNotExist) {
		return NewRateCache(), nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.ratesPath(), Err: err}
	}
	return DecodeRateCache(bytes.NewReader(data))
}

// SaveRates atomically replaces the rate snapshot.
func (s *FileStore) SaveRates(cache *RateCache) error {
	var buf bytes.Buffer
	if err := EncodeRateCache(&buf, cache); err != nil {
		return &PersistenceError{Op: "save", Path: s.ratesPath(), Err: err}
	}
	return s.writeAtomic(s.ratesPath(), buf.Bytes())
}

// LoadPortfolios reads all portfolios, empty when the file is missing.
func (s *FileStore) LoadPortfolios() (map[string]*Portfolio, error) {
	data, err := os.ReadFile(s.portfoliosPath())
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]*Portfolio), nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.portfoliosPath(), Err: err}
	}
	portfolios, err := DecodePortfolios(bytes.NewReader(data))
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.portfoliosPath(), Err: err}
	}
	return portfolios, nil
}

// SavePortfolios atomically replaces the portfolio snapshot.
func (s *FileStore) SavePortfolios(portfolios map[string]*Portfolio) error {
	var buf bytes.Buffer
	if err := EncodePortfolios(&buf, portfolios); err != nil {
		return &PersistenceError{Op: "save", Path: s.portfoliosPath(), Err: err}
	}
	return s.writeAtomic(s.portfoliosPath(), buf.Bytes())
}

// LoadUsers reads all accounts, empty when the file is missing.
func (s *FileStore) LoadUsers() (map[string]User, error) {
	data, err := os.ReadFile(s.usersPath())
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]User), nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.usersPath(), Err: err}
	}
	users, err := DecodeUsers(bytes.NewReader(data))
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.usersPath(), Err: err}
	}
	return users, nil
}

// SaveUsers atomically replaces the account file.
func (s *FileStore) SaveUsers(users map[string]User) error {
	var buf bytes.Buffer
	if err := EncodeUsers(&buf, users); err != nil {
		return &PersistenceError{Op: "save", Path: s.usersPath(), Err: err}
	}
	return s.writeAtomic(s.usersPath(), buf.Bytes())
}

// AppendTrade appends one journal line. Append is the only write the
// journal ever sees.
func (s *FileStore) AppendTrade(t TradeRecord) error {
	f, err := os.OpenFile(s.tradesPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.tradesPath(), Err: err}
	}
	defer f.Close()
	if err := EncodeTrade(f, t); err != nil {
		return &PersistenceError{Op: "save", Path: s.tradesPath(), Err: err}
	}
	return f.Close()
}

// LoadTrades reads the whole journal, empty when the file is missing.
func (s *FileStore) LoadTrades() ([]TradeRecord, error) {
	data, err := os.ReadFile(s.tradesPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.tradesPath(), Err: err}
	}
	trades, err := DecodeTrades(bytes.NewReader(data))
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.tradesPath(), Err: err}
	}
	return trades, nil
}

// Session returns the logged-in username, empty when nobody is logged in.
func (s *FileStore) Session() string {
	data, err := os.ReadFile(s.sessionPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SaveSession records the logged-in username.
func (s *FileStore) SaveSession(username string) error {
	return s.writeAtomic(s.sessionPath(), []byte(username+"\n"))
}

// ClearSession logs the current user out.
func (s *FileStore) ClearSession() error {
	err := os.Remove(s.sessionPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &PersistenceError{Op: "save", Path: s.sessionPath(), Err: err}
	}
	return nil
}

// writeAtomic writes data to a temp file in the same directory and renames
// it over the target.
func (s *FileStore) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Op: "save", Path: path, Err: fmt.Errorf("rename: %w", err)}
	}
	return nil
}
