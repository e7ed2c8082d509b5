package affiliation

import "errors"

// Sentinel errors for the affiliation service layer.
var (
	ErrInvalidCompanyName = errors.New("affiliation: company name contains a disallowed character")
)
