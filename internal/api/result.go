package api

// Result хранит значение или ошибку вызова сервиса, чтобы слой отображения
// обрабатывал любой вызов одинаково.
type Result[T any] struct {
	Value T
	Err   error
}

// Capture оборачивает результат вызова сервиса.
func Capture[T any](value T, err error) Result[T] {
	return Result[T]{Value: value, Err: err}
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}
