// Package seeders provides a registry of database seed functions.
//
// Seeders go through the services, so passwords are hashed and courses are
// linked to their creator exactly as they are for API calls:
//
//	func init() {
//	    seeders.Register("courses", SeedCourses)
//	}
//
// Then run via CLI: coursevault seed
package seeders

import (
	"context"
	"fmt"
	"sync"

	"github.com/aman-4321/CourseVault/app/services"
)

// Deps is what a seeder may use.
type Deps struct {
	Auth          *services.AuthService
	Courses       *services.CourseService
	AdminPassword string
}

// SeederFunc is the signature for a seed function.
type SeederFunc func(ctx context.Context, d Deps) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
// Call this from init() in your seeder files.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order.
// It stops on the first error.
func RunAll(ctx context.Context, d Deps) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	if len(current) == 0 {
		fmt.Println("  (no seeders registered)")
		return nil
	}

	for _, e := range current {
		fmt.Printf("  • Running seeder: %s … ", e.name)
		if err := e.fn(ctx, d); err != nil {
			fmt.Println("FAILED")
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		fmt.Println("done")
	}
	return nil
}
