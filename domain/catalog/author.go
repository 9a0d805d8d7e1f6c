package catalog

import "time"

// Author is a catalog author, unique by name.
type Author struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
