package types

// ProviderResult is the tagged outcome of a single provider call. Exactly one
// call is made per provider per pipeline run; results are independent, so a
// failed provider carries its error here instead of aborting the run.
type ProviderResult[T any] struct {
	OK    bool   `json:"ok"`
	Data  *T     `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Success wraps data in a successful result.
func Success[T any](data *T) ProviderResult[T] {
	return ProviderResult[T]{OK: true, Data: data}
}

// Failure wraps an error message in a failed result.
func Failure[T any](msg string) ProviderResult[T] {
	return ProviderResult[T]{OK: false, Error: msg}
}
