// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Reachable is false when MongoDB did not answer at startup. The app
	// still boots; data routes answer 503 until the server returns.
	Reachable bool

	bg *background
}

// background collects stop functions for goroutines started by the
// lifecycle hooks so Shutdown can end them. DBDeps is passed by value, so
// it is shared through a pointer.
type background struct {
	mu    sync.Mutex
	stops []func()
}

func (b *background) add(stop func()) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stops = append(b.stops, stop)
}

// stopAll runs stop functions in reverse registration order.
func (b *background) stopAll() {
	if b == nil {
		return
	}
	b.mu.Lock()
	stops := b.stops
	b.stops = nil
	b.mu.Unlock()
	for i := len(stops) - 1; i >= 0; i-- {
		stops[i]()
	}
}
