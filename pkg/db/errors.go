package db

import "strings"

// IsUniqueViolation reports whether err is a Postgres unique violation.
// With a constraintName the check narrows to that constraint, which is how
// the catalog maps a duplicate product slug to a conflict response.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value")
}
