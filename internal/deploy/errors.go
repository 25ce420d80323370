package deploy

// MissingArgumentError is returned when no output directory was supplied.
type MissingArgumentError struct{}

func (e *MissingArgumentError) Error() string {
	return "Please specify output directory"
}

// CopyError is returned when copying an asset fails. Error() reports the
// underlying diagnostic unchanged.
type CopyError struct {
	Source string
	Target string
	// Code is the process exit status the failure maps to.
	Code int
	Err  error
}

func (e *CopyError) Error() string {
	if e.Err == nil {
		return "copy failed: " + e.Source + " -> " + e.Target
	}
	return e.Err.Error()
}

func (e *CopyError) Unwrap() error {
	return e.Err
}
