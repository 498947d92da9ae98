// Package db holds the persistence port the repositories are built on.
package db

// DB hands repositories the underlying connection; each repository asserts
// it to the client it is written for (e.g. *gorm.DB).
type DB interface {
	Conn() any
	Close() error
}
