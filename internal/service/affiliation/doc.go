// Package affiliation implements the Affiliation side of the Canonical
// Store: a person's relationship to a company, accumulated insert-or-ignore
// across imports, never overwritten once created.
//
// The service layer contains pure business logic and depends on the
// Repository interface defined in repository.go. It never imports
// database/sql directly.
package affiliation
