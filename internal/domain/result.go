package domain

import "encoding/json"

// Result is the two-branch outcome container used as the sole
// error-propagation mechanism across the core. A Result holds either a
// value or an *Error, never both. The zero value is meaningless; always
// construct through Ok or Fail.
type Result[T any] struct {
	ok    bool
	value T
	err   *Error
}

// Ok wraps a value in a successful Result.
func Ok[T any](value T) Result[T] {
	return Result[T]{ok: true, value: value}
}

// Fail wraps an error in a failed Result. A nil err degrades to an
// internal error rather than producing an empty failure branch.
func Fail[T any](err *Error) Result[T] {
	if err == nil {
		err = InternalError("")
	}
	return Result[T]{err: err}
}

func (r Result[T]) IsSuccess() bool {
	return r.ok
}

// Value returns the success payload. Only meaningful when IsSuccess.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure payload, nil on success.
func (r Result[T]) Err() *Error {
	return r.err
}

type resultJSON[T any] struct {
	IsSuccess bool   `json:"isSuccess"`
	Value     *T     `json:"value"`
	Error     *Error `json:"error"`
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	out := resultJSON[T]{IsSuccess: r.ok, Error: r.err}
	if r.ok {
		v := r.value
		out.Value = &v
	}
	return json.Marshal(out)
}

func (r *Result[T]) UnmarshalJSON(data []byte) error {
	var in resultJSON[T]
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.IsSuccess && in.Value != nil {
		*r = Ok(*in.Value)
		return nil
	}
	*r = Fail[T](in.Error)
	return nil
}
