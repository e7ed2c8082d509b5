// Package person implements the Person side of the Canonical Store: the
// long-lived identity record keyed on (tenant, lower(email)).
//
// The service layer contains pure business logic and depends on the
// Repository interface defined in repository.go. It never imports
// database/sql directly.
package person
