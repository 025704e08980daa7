package cart

import "errors"

var (
	ErrOutOfStock        = errors.New("requested amount exceeds stock")
	ErrNotFound          = errors.New("product not in cart")
	ErrOperationFailed   = errors.New("cart operation failed")
	ErrCorruptSnapshot   = errors.New("corrupt cart snapshot")
	ErrUnsupportedSchema = errors.New("unsupported cart snapshot version")
)
