package folio

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateMissing means the built HTML template does not exist. Nothing
	// can be prerendered without it.
	ErrTemplateMissing = errors.New("prerender template not found")

	// ErrMissingClosingDelimiter indicates a document started with a front-matter
	// delimiter but did not contain a closing one.
	ErrMissingClosingDelimiter = errors.New("front-matter start delimiter found but closing delimiter is missing")

	// ErrMarkerMissing is reported when a template slot's marker cannot be found.
	ErrMarkerMissing = errors.New("template marker not found")

	// ErrBuildLocked is returned when another build holds the output lock.
	ErrBuildLocked = errors.New("another build is already running for this output directory")
)

// LoadError ties a content loading failure to the offending file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// DuplicateIDError reports two records of the same kind sharing an id. Ids
// are unique per kind regardless of category or publication date.
type DuplicateIDError struct {
	Kind   string
	ID     string
	First  string
	Second string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate %s id %q: %s collides with %s", e.Kind, e.ID, e.Second, e.First)
}

// DuplicateRouteError reports two routes resolving to the same path.
type DuplicateRouteError struct {
	Path   string
	First  string // source of the route already in the table
	Second string // source of the colliding route
}

func (e *DuplicateRouteError) Error() string {
	return fmt.Sprintf("duplicate route %s: %s collides with %s", e.Path, e.Second, e.First)
}
