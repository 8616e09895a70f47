// Package sqlite implements the SQLite record store for darzi.
package sqlite

// Schema DDL. Every statement is idempotent so Initialize can run on each
// start. AUTOINCREMENT keeps deleted ids from being handed out again.
const (
	createCustomer = `CREATE TABLE IF NOT EXISTS customer (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL DEFAULT '',
    phoneNumber TEXT NOT NULL DEFAULT '',
    qad TEXT NOT NULL DEFAULT '',
    barDaman TEXT NOT NULL DEFAULT '',
    baghal TEXT NOT NULL DEFAULT '',
    shana TEXT NOT NULL DEFAULT '',
    astin TEXT NOT NULL DEFAULT '',
    tunban TEXT NOT NULL DEFAULT '',
    pacha TEXT NOT NULL DEFAULT '',
    daman TEXT NOT NULL DEFAULT '',
    yakhan TEXT NOT NULL DEFAULT '',
    yakhanValue TEXT NOT NULL DEFAULT '',
    caff TEXT NOT NULL DEFAULT '',
    caffValue TEXT NOT NULL DEFAULT '',
    jeeb TEXT NOT NULL DEFAULT '',
    tunbanStyle TEXT NOT NULL DEFAULT '',
    yakhanBin INTEGER NOT NULL DEFAULT 0,
    jeebTunban INTEGER NOT NULL DEFAULT 0,
    farmaish TEXT NOT NULL DEFAULT '',
    registrationDate TEXT NOT NULL DEFAULT (date('now'))
);`

	createWaskat = `CREATE TABLE IF NOT EXISTS waskat (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL DEFAULT '',
    phoneNumber TEXT NOT NULL DEFAULT '',
    qad TEXT NOT NULL DEFAULT '',
    shana TEXT NOT NULL DEFAULT '',
    baghal TEXT NOT NULL DEFAULT '',
    kamar TEXT NOT NULL DEFAULT '',
    soreen TEXT NOT NULL DEFAULT '',
    astin TEXT NOT NULL DEFAULT '',
    yakhan TEXT NOT NULL DEFAULT '',
    yakhanValue TEXT NOT NULL DEFAULT '',
    farmaish TEXT NOT NULL DEFAULT '',
    registrationDate TEXT NOT NULL DEFAULT (date('now'))
);`

	createAdmin = `CREATE TABLE IF NOT EXISTS admin (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    password TEXT NOT NULL
);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createCustomer,
	createWaskat,
	createAdmin,
}

// adminID is the fixed id of the single credential row.
const adminID = 1
