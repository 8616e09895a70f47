package sqlite

import (
	"strings"

	"github.com/mesh-intelligence/darzi/pkg/types"
)

// column describes one non-key column of a record table.
type column struct {
	name string
	flag bool // stored as 0/1 INTEGER
}

// recordTable holds the fixed query templates for one record kind. Queries
// are built once from the column lists below; no caller-supplied string is
// ever part of the SQL text.
type recordTable struct {
	kind    types.Kind
	name    string
	columns []column

	selectAll    string
	search       string
	count        string
	get          string
	exists       string
	insert       string
	insertWithID string
	update       string
	delete       string
}

var customerColumns = []column{
	{name: "name"},
	{name: "phoneNumber"},
	{name: "qad"},
	{name: "barDaman"},
	{name: "baghal"},
	{name: "shana"},
	{name: "astin"},
	{name: "tunban"},
	{name: "pacha"},
	{name: "daman"},
	{name: "yakhan"},
	{name: "yakhanValue"},
	{name: "caff"},
	{name: "caffValue"},
	{name: "jeeb"},
	{name: "tunbanStyle"},
	{name: "yakhanBin", flag: true},
	{name: "jeebTunban", flag: true},
	{name: "farmaish"},
	{name: "registrationDate"},
}

var waskatColumns = []column{
	{name: "name"},
	{name: "phoneNumber"},
	{name: "qad"},
	{name: "shana"},
	{name: "baghal"},
	{name: "kamar"},
	{name: "soreen"},
	{name: "astin"},
	{name: "yakhan"},
	{name: "yakhanValue"},
	{name: "farmaish"},
	{name: "registrationDate"},
}

var (
	customerTable = newRecordTable(types.KindCustomer, "customer", customerColumns)
	waskatTable   = newRecordTable(types.KindWaskat, "waskat", waskatColumns)
)

// tableFor maps a kind onto its table. Returns ErrInvalidKind for anything
// that is not a record kind.
func tableFor(kind types.Kind) (*recordTable, error) {
	switch kind {
	case types.KindCustomer:
		return customerTable, nil
	case types.KindWaskat:
		return waskatTable, nil
	default:
		return nil, types.ErrInvalidKind
	}
}

func newRecordTable(kind types.Kind, name string, cols []column) *recordTable {
	t := &recordTable{kind: kind, name: name, columns: cols}

	// Older rows may hold NULL or loosely typed values; normalize on read so
	// scans into string and bool fields never fail.
	sel := []string{"id"}
	var names, binds, sets []string
	for _, c := range cols {
		if c.flag {
			sel = append(sel, "CASE WHEN "+c.name+" IN (1, '1', 'true') THEN 1 ELSE 0 END AS "+c.name)
		} else {
			sel = append(sel, "COALESCE("+c.name+", '') AS "+c.name)
		}
		names = append(names, c.name)
		binds = append(binds, ":"+c.name)
		sets = append(sets, c.name+" = :"+c.name)
	}
	selectList := strings.Join(sel, ", ")

	t.selectAll = "SELECT " + selectList + " FROM " + name + " ORDER BY id"
	t.search = "SELECT " + selectList + " FROM " + name +
		` WHERE name LIKE ? ESCAPE '\' OR phoneNumber LIKE ? ESCAPE '\' ORDER BY id`
	t.count = "SELECT COUNT(*) FROM " + name
	t.get = "SELECT " + selectList + " FROM " + name + " WHERE id = ?"
	t.exists = "SELECT EXISTS(SELECT 1 FROM " + name + " WHERE id = ?)"
	t.insert = "INSERT INTO " + name + " (" + strings.Join(names, ", ") + ") VALUES (" + strings.Join(binds, ", ") + ")"
	t.insertWithID = "INSERT OR IGNORE INTO " + name + " (id, " + strings.Join(names, ", ") + ") VALUES (:id, " + strings.Join(binds, ", ") + ")"
	t.update = "UPDATE " + name + " SET " + strings.Join(sets, ", ") + " WHERE id = :id"
	t.delete = "DELETE FROM " + name + " WHERE id = ?"
	return t
}

// likePattern turns search text into a LIKE pattern that matches it as a
// literal substring.
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(search) + "%"
}
