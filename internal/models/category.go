package models

// Category represents a record in the "categories" collection.
// Reference data, read-only from the application's perspective.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
