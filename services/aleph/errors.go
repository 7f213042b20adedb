package aleph

import "fmt"

// ConfigError reports a required connection setting missing at construction.
// It is fatal and never recovered.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing %s config setting", e.Key)
}

// RemoteError is a protocol-level failure: the server answered, but with a
// non-success reply code or an in-band error element. Response keeps the raw
// body for diagnostics.
type RemoteError struct {
	Code     string
	Message  string
	Response []byte
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("aleph: %s (reply-code %s)", e.Message, e.Code)
	}
	return "aleph: " + e.Message
}

// TransportError is a network-level failure: the server could not be reached
// or the call did not complete. Distinct from RemoteError so callers can log
// the two differently.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("aleph: request %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
