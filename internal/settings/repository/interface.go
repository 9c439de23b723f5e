package repository

import "context"

// Setting is a key/value configuration row with a JSON value.
type Setting struct {
	Key       string
	Value     any
	UpdatedAt string
}

// Repository provides setting persistence. Writes are last-writer-wins
// upserts keyed by name.
type Repository interface {
	List(ctx context.Context) ([]Setting, error)
	Get(ctx context.Context, key string) (Setting, error)
	Set(ctx context.Context, key string, value any) (Setting, error)
}
