package model

// Entity is implemented by every persisted record. Columns returns the
// mutable columns written by a full-record update.
type Entity interface {
	GetID() uint
	GetVersion() uint
	Columns() map[string]any
}

// All lists every model in migration order.
func All() []any {
	return []any{&Author{}, &Publisher{}, &Book{}}
}
