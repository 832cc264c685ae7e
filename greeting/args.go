package greeting

import "errors"

// ErrArgument matches every *ArgumentError.
var ErrArgument = errors.New("Expecting one argument")

// ArgumentError reports a command line that does not carry exactly one name.
type ArgumentError struct {
	Got int
}

func (e *ArgumentError) Error() string {
	return ErrArgument.Error()
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrArgument
}

// ValidateArgs returns the single name in args.
func ValidateArgs(args []string) (string, error) {
	if len(args) != 1 {
		return "", &ArgumentError{Got: len(args)}
	}
	return args[0], nil
}
