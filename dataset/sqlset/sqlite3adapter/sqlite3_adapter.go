/*
Package sqlite3adapter provides an implementation of the
Adapter interface in the sqlset package that works
over an SQLite3 database file.
*/
package sqlite3adapter

import (
	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/pbanos/pricetree/dataset/sqlset"
)

// Dialect is the sqlset.Dialect of SQLite3 databases.
var Dialect = sqlset.Dialect{
	Driver:      "sqlite3",
	Placeholder: func(int) string { return "?" },
	IDColumn:    `"id" INTEGER PRIMARY KEY AUTOINCREMENT`,
}

/*
New takes a path to an SQLite3 database file and returns an Adapter that works
on the file's database or an error if it fails to open as an sqlite3 database.
*/
func New(path string) (sqlset.Adapter, error) {
	return sqlset.OpenAdapter(Dialect, path)
}
