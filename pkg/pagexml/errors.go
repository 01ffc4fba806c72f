package pagexml

import "fmt"

// GeometryError reports a region whose geometry could not be resolved:
// it yielded no usable lines, or a polygon coordinate token was malformed.
type GeometryError struct {
	Page   string
	Region string
	Err    error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("page %s: region %s: %v", e.Page, e.Region, e.Err)
}

func (e *GeometryError) Unwrap() error { return e.Err }
