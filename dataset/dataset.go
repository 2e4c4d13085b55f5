// Package dataset holds the optional reference CSV used to populate the
// categorical choices of the form. Rows are kept in an in-memory SQLite table
// with every column stored as TEXT; empty cells and the usual missing-value
// markers ("NA", "N/A", "nan", "null", ...) are NULL.
package dataset

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const tableName = "reference"

var ErrNoColumn = errors.New("column not present in dataset")

// naValues are the cell spellings read as missing, matching the default
// na_values of pandas.read_csv.
var naValues = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true,
	"-1.#IND": true, "-1.#QNAN": true, "-NaN": true, "-nan": true,
	"1.#IND": true, "1.#QNAN": true, "<NA>": true, "N/A": true,
	"NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

type Dataset struct {
	db      *sql.DB
	columns []string
	rows    int
}

func Load(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ds, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return ds, nil
}

// Read parses CSV with a header row. Short rows are padded with NULL and stray
// quotes inside unquoted cells are kept as text; a row longer than the header
// is an error.
func Read(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("dataset is empty")
	}
	if err != nil {
		return nil, err
	}
	columns := normalizeHeader(header)

	db, err := sql.Open("sqlite3", "file::memory:")
	if err != nil {
		return nil, fmt.Errorf("open database failed: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	ds := &Dataset{db: db, columns: columns}
	if err := ds.fill(reader); err != nil {
		db.Close()
		return nil, err
	}
	return ds, nil
}

func (ds *Dataset) fill(reader *csv.Reader) error {
	defs := make([]string, len(ds.columns))
	marks := make([]string, len(ds.columns))
	for i, c := range ds.columns {
		defs[i] = quoteIdent(c) + " TEXT"
		marks[i] = "?"
	}
	ctx := context.Background()
	if _, err := ds.db.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", tableName, strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("create table failed: %w", err)
	}

	tx, err := ds.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)", tableName, strings.Join(marks, ", ")))
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(ds.columns))
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if len(record) > len(ds.columns) {
			line, _ := reader.FieldPos(0)
			return fmt.Errorf("record on line %d: %d fields, header has %d", line, len(record), len(ds.columns))
		}
		for i := range args {
			if i < len(record) && !naValues[record[i]] {
				args[i] = record[i]
			} else {
				args[i] = nil
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", ds.rows+1, err)
		}
		ds.rows++
	}
	return tx.Commit()
}

func (ds *Dataset) Columns() []string {
	return append([]string(nil), ds.columns...)
}

func (ds *Dataset) HasColumn(name string) bool {
	for _, c := range ds.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of data rows.
func (ds *Dataset) Len() int {
	return ds.rows
}

// Distinct returns the distinct non-null values of column in byte order.
func (ds *Dataset) Distinct(ctx context.Context, column string) ([]string, error) {
	if !ds.HasColumn(column) {
		return nil, fmt.Errorf("%w: %s", ErrNoColumn, column)
	}
	col := quoteIdent(column)
	query := fmt.Sprintf("SELECT DISTINCT %s FROM %s WHERE %s IS NOT NULL ORDER BY %s COLLATE BINARY", col, tableName, col, col)
	rows, err := ds.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (ds *Dataset) Close() error {
	return ds.db.Close()
}

// ResolveOptions returns the sorted distinct values observed for column, or
// fallback when the dataset is absent (nil), lacks the column, or has no
// values for it.
func ResolveOptions(ds *Dataset, column string, fallback []string) []string {
	if ds == nil || !ds.HasColumn(column) {
		return fallback
	}
	values, err := ds.Distinct(context.Background(), column)
	if err != nil || len(values) == 0 {
		return fallback
	}
	return values
}

// normalizeHeader names blank headers and de-duplicates repeated ones the way
// pandas does ("a", "a.1", ...).
func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		candidate := name
		for n := 1; used[candidate]; n++ {
			candidate = name + "." + strconv.Itoa(n)
		}
		used[candidate] = true
		columns[i] = candidate
	}
	return columns
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
