package repository

import "context"

// Well-known record keys.
const (
	ItemsKey    = "phraser"
	SettingsKey = "phraser-settings"
)

// RecordStore is durable key-value persistence for serialized records.
// Get returns entity.ErrRecordNotFound when the key is absent.
type RecordStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
