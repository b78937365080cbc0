package store

import (
	"fmt"
	"sort"
	"strings"
)

// Report counts the rows removed per table by one cascading delete.
type Report map[string]int64

// Add records n removed rows of table.
func (r Report) Add(table string, n int64) {
	if n == 0 {
		return
	}
	r[table] += n
}

// Total returns the number of removed rows across all tables.
func (r Report) Total() int64 {
	var total int64
	for _, n := range r {
		total += n
	}
	return total
}

// String renders the report sorted by table name.
func (r Report) String() string {
	tables := make([]string, 0, len(r))
	for table := range r {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	parts := make([]string, 0, len(tables))
	for _, table := range tables {
		parts = append(parts, fmt.Sprintf("%s=%d", table, r[table]))
	}
	return strings.Join(parts, " ")
}
