package library

import (
	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
)

const locatorScheme = "blob:"

// Resources maps locators to the files they were created from.
//
// It is not safe for concurrent use; the player drives it from a single goroutine.
type Resources struct {
	entries map[models.Locator]string
}

// NewResources creates an empty registry.
func NewResources() *Resources {
	return &Resources{entries: make(map[models.Locator]string)}
}

// Create mints a new locator for path. Every call returns a distinct locator, even for the same path.
func (r *Resources) Create(path string) models.Locator {
	loc := models.Locator(locatorScheme + shared.GenerateID())
	r.entries[loc] = path
	return loc
}

// Register maps an existing locator to path, e.g. for tracks restored from storage.
func (r *Resources) Register(loc models.Locator, path string) {
	r.entries[loc] = path
}

// Resolve returns the file path behind loc.
func (r *Resources) Resolve(loc models.Locator) (string, bool) {
	path, ok := r.entries[loc]
	return path, ok
}

// Release forgets loc. It reports whether loc was registered.
func (r *Resources) Release(loc models.Locator) bool {
	if _, ok := r.entries[loc]; !ok {
		return false
	}
	delete(r.entries, loc)
	return true
}

// Len returns the number of live locators.
func (r *Resources) Len() int {
	return len(r.entries)
}
