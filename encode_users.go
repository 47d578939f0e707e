package valutatrade

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

type userJSON struct {
	Salt         string `json:"salt"`
	PasswordHash string `json:"password_hash"`
	RegisteredAt string `json:"registered_at"`
}

// EncodeUsers writes all accounts as one canonical JSON object keyed by
// username, sorted.
func EncodeUsers(w io.Writer, users map[string]User) error {
	root := &jsonObjectWriter{}
	for _, name := range sortedKeys(users) {
		u := users[name]
		entry := &jsonObjectWriter{}
		entry.Append("salt", u.Salt)
		entry.Append("password_hash", u.PasswordHash)
		entry.Append("registered_at", u.RegisteredAt.UTC().Format(time.RFC3339))
		root.Append(name, entry)
	}
	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// DecodeUsers reads the account file back.
func DecodeUsers(r io.Reader) (map[string]User, error) {
	var raw map[string]userJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid user file: %w", err)
	}
	users := make(map[string]User, len(raw))
	for name, entry := range raw {
		at, err := time.Parse(time.RFC3339, entry.RegisteredAt)
		if err != nil {
			return nil, fmt.Errorf("invalid registration time for %q: %w", name, err)
		}
		users[name] = User{
			Username:     name,
			Salt:         entry.Salt,
			PasswordHash: entry.PasswordHash,
			RegisteredAt: at,
		}
	}
	return users, nil
}
