// Package liststore holds the in-memory list served by ListService.
//
// The list is fixed when the store is created and never changes afterwards,
// so a single Store can be shared by every request without locking. Head and
// Tail hand out copies, never views into the backing array.
//
// Example usage:
//
//	store := liststore.NewSample()
//	items, err := store.Tail(2) // [date elderberry]
package liststore
