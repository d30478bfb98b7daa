package services

// Identity is the explicit caller identity passed into every
// authorization-sensitive operation. It is resolved once at the HTTP edge
// and never read from ambient state below that.
type Identity struct {
	UserID      uint64
	IsCaregiver bool
	IsMember    bool
}

// ValidationError reports a field-level rule violation. Always recoverable;
// the presentation layer re-displays Field and Reason to the end user.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func invalid(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Reason: err.Error()}
}
