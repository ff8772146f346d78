// Package types defines the Store interface, entity types, query shapes,
// and standard error types for the Gridbase tabular storage system.
// Entities are tables, columns, rows (schemaless cell maps), and views;
// the query shapes cover filtering, sorting, and keyset pagination.
package types
