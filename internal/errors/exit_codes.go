package errors

type ExitCode int

const (
	ExitSuccess         ExitCode = 0
	ExitGeneralError    ExitCode = 1
	ExitConfigError     ExitCode = 2
	ExitCredentialError ExitCode = 3
	ExitToolError       ExitCode = 4
	ExitAPIError        ExitCode = 5
	ExitServerError     ExitCode = 6
)

func (e ExitCode) Int() int {
	return int(e)
}
