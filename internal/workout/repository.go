package workout

import "context"

// Date layouts of the persisted logs.
const (
	logDateLayout    = "2006-01-02 15:04"
	weightDateLayout = "2006-01-02"
)

// Repository persists the single profile.
type Repository interface {
	// Load returns ErrNotFound when no profile has been saved.
	Load(ctx context.Context) (Profile, error)
	// Save replaces the stored profile including both logs.
	Save(ctx context.Context, p Profile) error
}
