package resolver

import "fmt"

/*
ResolutionError is returned when the resolver could not produce a response:
If StatusCode != 0:

	the service answered with a non-success status, Status holds its text

If StatusCode == 0:

	the request never completed, Err holds the transport failure
*/
type ResolutionError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *ResolutionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API Error: %s", e.Status)
	}
	return fmt.Sprintf("API request failed: %v", e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
