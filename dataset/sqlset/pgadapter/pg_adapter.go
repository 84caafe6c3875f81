/*
Package pgadapter provides an implementation of the
Adapter interface in the sqlset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"fmt"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"

	"github.com/pbanos/pricetree/dataset/sqlset"
)

// Dialect is the sqlset.Dialect of PostgreSQL databases.
var Dialect = sqlset.Dialect{
	Driver:      "postgres",
	Placeholder: func(i int) string { return fmt.Sprintf("$%d", i) },
	IDColumn:    `"id" SERIAL PRIMARY KEY`,
}

/*
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (sqlset.Adapter, error) {
	return sqlset.OpenAdapter(Dialect, url)
}
