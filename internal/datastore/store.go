// Package datastore persists enrichment run snapshots for later inspection.
package datastore

// Store is the interface for snapshot storage backends.
type Store interface {
	Connect() error
	CreateTable(schema string) error
	BatchInsert(table string, records []map[string]any) error
	Close() error
}
