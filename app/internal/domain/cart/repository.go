package cart

import "context"

// Repository persists the whole cart as one snapshot.
type Repository interface {
	Load(ctx context.Context) (Cart, error)
	Save(ctx context.Context, c Cart) error
}

type Notifier interface {
	Report(ctx context.Context, msg Message)
}
