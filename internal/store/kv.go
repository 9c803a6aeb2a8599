package store

import "database/sql"

// KV is a small key-value table. Its one production consumer is the model
// roster, which keeps its resumption cursor here.
type KV struct {
	db *sql.DB
}

// Get returns the value for key, or "" when the key is absent.
func (k *KV) Get(key string) (string, error) {
	var value string
	err := k.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (k *KV) Set(key, value string) error {
	_, err := k.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return err
}

// Delete removes key. Deleting an absent key is not an error.
func (k *KV) Delete(key string) error {
	_, err := k.db.Exec("DELETE FROM kv WHERE key = ?", key)
	return err
}
