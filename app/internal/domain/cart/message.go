package cart

// Message is a user-facing notification. Only the constants below are used.
type Message string

const (
	MessageOutOfStock   Message = "requested quantity unavailable"
	MessageAddFailed    Message = "could not add product"
	MessageRemoveFailed Message = "could not remove product"
	MessageUpdateFailed Message = "could not update product quantity"
)
