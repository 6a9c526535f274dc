package repository

import "context"

// DB is the minimal liveness interface handlers need from the database.
type DB interface {
	Ping(ctx context.Context) error
}
