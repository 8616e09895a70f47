package types

// Store is the record store: typed CRUD over the customer and waskat tables
// plus the single admin credential row.
type Store interface {
	// Open connects to the database described by config and initializes the
	// schema. Opening an open store with the same config is a no-op; a
	// different config returns ErrAlreadyOpen.
	Open(config Config) error

	// Close releases the connection. Idempotent.
	Close() error

	// Initialize creates missing tables and seeds the credential row once.
	// Safe to call on every start.
	Initialize() error

	// Fetch returns every record of kind, or only those whose name or phone
	// number contains search when search is non-empty.
	Fetch(kind Kind, search string) ([]Record, error)
	FetchCustomers(search string) ([]Customer, error)
	FetchWaskats(search string) ([]Waskat, error)

	// Count returns the number of records of kind.
	Count(kind Kind) (int, error)

	// Get returns the record with id, or ErrNotFound.
	Get(kind Kind, id int64) (Record, error)

	// Exists reports whether a record with id is present.
	Exists(kind Kind, id int64) (bool, error)

	// Insert stores rec under a newly assigned id and returns that id.
	// rec's own ID is ignored.
	Insert(rec Record) (int64, error)

	// InsertWithID stores rec under rec's own id. Returns false without
	// writing when that id is already taken.
	InsertWithID(rec Record) (bool, error)

	// Update replaces every field of the record with id. Returns the number of
	// rows affected; zero means no such record.
	Update(id int64, rec Record) (int64, error)

	// Delete removes the record with id and reports whether one was removed.
	Delete(kind Kind, id int64) (bool, error)

	// VerifyCredential reports whether candidate equals the stored password.
	VerifyCredential(candidate string) (bool, error)

	// ChangeCredential replaces the stored password. Returns
	// ErrCredentialMismatch if current is wrong and ErrEmptyCredential if next
	// is empty.
	ChangeCredential(current, next string) error
}
