package category

import (
	"time"

	"github.com/google/uuid"
)

// Category is a GST tax category with its rate and the keywords used to match
// free-text descriptions against it.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Rate      float64   `json:"rate"`
	Keywords  []string  `json:"keywords"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
