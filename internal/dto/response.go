package dto

// PaginatedResponse is what list services hand to controllers.
type PaginatedResponse[T any] struct {
	List  []T
	Total uint64
}
