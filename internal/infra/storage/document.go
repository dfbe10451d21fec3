// Package storage provides typed JSON access to a KeyedStore and selects
// the configured backend.
package storage

import (
	"bytes"
	"context"
	"encoding/json"

	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/domain/repository"
	"veluna/internal/errors"
)

var jsonNull = []byte("null")

// GetJSON reads key and decodes it into T. It returns repository.ErrKeyNotFound
// when the key is absent or holds JSON null, and repository.ErrMalformedDocument
// when the stored bytes do not decode.
func GetJSON[T any](ctx context.Context, store repository.KeyedStore, key string) (T, error) {
	var value T

	raw, err := store.Get(ctx, key)
	if err != nil {
		return value, err
	}

	return DecodeJSON[T](key, raw)
}

// DecodeJSON decodes a raw document read from key.
func DecodeJSON[T any](key string, raw []byte) (T, error) {
	var value T

	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return value, repository.ErrKeyNotFound
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		return value, errors.Wrapf(repository.ErrMalformedDocument, "decode %s: %v", key, err)
	}

	return value, nil
}

// SetJSON encodes value and stores it under key. Any failure is returned as
// a StorageWriteError.
func SetJSON[T any](ctx context.Context, store repository.KeyedStore, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return domainerrors.NewStorageWriteError(errors.Wrap(err, "encode"), key)
	}

	if err := store.Set(ctx, key, raw); err != nil {
		return domainerrors.NewStorageWriteError(err, key)
	}

	return nil
}

// Remove deletes key, reporting failures as a StorageWriteError.
func Remove(ctx context.Context, store repository.KeyedStore, key string) error {
	if err := store.Remove(ctx, key); err != nil {
		return domainerrors.NewStorageWriteError(err, key)
	}

	return nil
}
