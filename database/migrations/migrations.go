// Package migrations holds the SQL schema of the store. Each migration
// registers itself with pkg/migration from init(); importing this package
// is enough to make `store migrate` see them.
package migrations
