package holdemshot

// MinBullets and MaxBullets bound the configured bullets per room
const (
	MinBullets = 1
	MaxBullets = 3
)

// Options configures a room
type Options struct {
	Bullets int  `json:"bullets"`
	Private bool `json:"private"`
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		Bullets: MinBullets,
	}
}

// ValidateBullets ensures the bullet count can be configured on a room
func ValidateBullets(bullets int) error {
	if bullets < MinBullets || bullets > MaxBullets {
		return ErrInvalidBullets
	}

	return nil
}

func validateOptions(opts Options) error {
	return ValidateBullets(opts.Bullets)
}
