package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// Seed repository sentinels.
	ErrSeedNotFound   = errors.New("seed not found")
	ErrSeedNameExists = errors.New("seed company name already exists")

	// Company repository sentinels.
	ErrCompanyNotFound = errors.New("company not found")

	// Job archive repository sentinels.
	ErrJobNotFound = errors.New("job not found")
)
