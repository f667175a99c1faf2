// Package schema centralizes table and column names for all SQL built in
// the store layer. Each table gets a typed definition so queries reference
// columns through constants instead of string literals.
package schema

// OnDelete describes the referential action a foreign key takes when the
// referenced row is deleted. Declared here so store code can reason about
// relation lifetimes without re-reading the DDL.
type OnDelete string

const (
	// Cascade removes dependent rows together with the referenced row.
	Cascade OnDelete = "CASCADE"
	// SetNull detaches dependent rows by nulling the reference.
	SetNull OnDelete = "SET NULL"
	// Restrict refuses the delete while dependent rows exist.
	Restrict OnDelete = "RESTRICT"
)

// ForeignKey documents one relationship between tables.
type ForeignKey struct {
	From     string
	To       string
	OnDelete OnDelete
}
