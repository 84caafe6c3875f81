package sqlset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/pbanos/pricetree/listing"
)

const (
	recordsTable = "records"

	/*
		MaxRecordInsertionsPerStatement is the maximum number
		of records that are allowed to be added with a single
		insert command with the AddRecords method of an adapter.
		Trying to add more will result in making more insertion commands
	*/
	MaxRecordInsertionsPerStatement = 10
)

/*
Adapter is an interface providing the methods
needed to implement a Set with a database backend.
Records are handled as rows of encoded values in
the order of listing.Columns.
*/
type Adapter interface {
	CreateRecordsTable(context.Context) error
	AddRecords(context.Context, [][]string) (int, error)
	IterateOnRecords(context.Context, func([]string) (bool, error)) error
	CountRecords(context.Context) (int, error)
	Close() error
}

/*
Dialect holds what differs between the SQL databases an Adapter can work
on.
*/
type Dialect struct {
	// Name of the database/sql driver
	Driver string
	// Placeholder returns the bind parameter for the nth value of a
	// statement, counting from 1.
	Placeholder func(int) string
	// IDColumn is the definition of the auto-incremented primary key
	// column of the records table.
	IDColumn string
}

type adapter struct {
	db      *sql.DB
	dialect Dialect
}

/*
NewAdapter takes a database handle and the dialect of its database and
returns an Adapter working on it.
*/
func NewAdapter(db *sql.DB, d Dialect) Adapter {
	return &adapter{db, d}
}

/*
OpenAdapter takes a dialect and a data source name, opens a database handle
with the dialect's driver and returns an Adapter working on it or an error.
*/
func OpenAdapter(d Dialect, dsn string) (Adapter, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s database", d.Driver)
	}
	return NewAdapter(db, d), nil
}

func quotedColumns() string {
	return `"` + strings.Join(listing.Columns, `", "`) + `"`
}

func createTableStatement(d Dialect) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "CREATE TABLE IF NOT EXISTS %s(", recordsTable)
	for _, c := range listing.Columns {
		fmt.Fprintf(&buf, `"%s" TEXT NOT NULL, `, c)
	}
	buf.WriteString(d.IDColumn)
	buf.WriteString(")")
	return buf.String()
}

func insertStatement(d Dialect, rows int) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "INSERT INTO %s (%s) VALUES ", recordsTable, quotedColumns())
	p := 1
	for i := 0; i < rows; i++ {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for j := range listing.Columns {
			if j > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(d.Placeholder(p))
			p++
		}
		buf.WriteString(")")
	}
	return buf.String()
}

func (a *adapter) CreateRecordsTable(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, createTableStatement(a.dialect))
	if err != nil {
		return errors.Wrapf(err, "ensuring %s table exists", recordsTable)
	}
	return nil
}

func (a *adapter) AddRecords(ctx context.Context, rows [][]string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "starting transaction")
	}
	var added int
	for added < len(rows) {
		end := added + MaxRecordInsertionsPerStatement
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[added:end]
		values := make([]interface{}, 0, len(chunk)*len(listing.Columns))
		for _, r := range chunk {
			for _, v := range r {
				values = append(values, v)
			}
		}
		_, err = tx.ExecContext(ctx, insertStatement(a.dialect, len(chunk)), values...)
		if err != nil {
			tx.Rollback()
			return 0, errors.Wrapf(err, "inserting records %d to %d", added+1, end)
		}
		added = end
	}
	err = tx.Commit()
	if err != nil {
		return 0, errors.Wrap(err, "committing records")
	}
	return added, nil
}

func (a *adapter) IterateOnRecords(ctx context.Context, lambda func([]string) (bool, error)) error {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY "id"`, quotedColumns(), recordsTable)
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return errors.Wrap(err, "querying records")
	}
	defer rows.Close()
	for rows.Next() {
		row := make([]string, len(listing.Columns))
		dest := make([]interface{}, len(row))
		for i := range row {
			dest[i] = &row[i]
		}
		err = rows.Scan(dest...)
		if err != nil {
			return errors.Wrap(err, "scanning record")
		}
		ok, err := lambda(row)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	return errors.Wrap(rows.Err(), "iterating on records")
}

func (a *adapter) CountRecords(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", recordsTable)).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, "counting records")
	}
	return count, nil
}

func (a *adapter) Close() error {
	return a.db.Close()
}
