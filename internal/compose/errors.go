package compose

// IncompleteError is a local pre-submit validation failure: required fields
// are missing, so no request is sent at all.
type IncompleteError struct {
	Detail string
}

func (e *IncompleteError) Error() string {
	if e.Detail == "" {
		return "campos incompletos"
	}
	return "campos incompletos: " + e.Detail
}
