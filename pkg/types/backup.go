package types

// Document is the backup file: a snapshot of both record kinds plus metadata.
type Document struct {
	Customers  []Customer `json:"customers"`
	Waskat     []Waskat   `json:"waskat"`
	BackupDate string     `json:"backupDate"`
	AppVersion string     `json:"appVersion"`
}

// Tally counts the outcome of restoring one kind.
type Tally struct {
	Inserted int `json:"inserted"`
	Errors   int `json:"errors"`
}

// RestoreReport is the per-kind result of a restore.
type RestoreReport struct {
	Customers Tally `json:"customers"`
	Waskat    Tally `json:"waskat"`
}

// Total returns the combined tally of both kinds.
func (r RestoreReport) Total() Tally {
	return Tally{
		Inserted: r.Customers.Inserted + r.Waskat.Inserted,
		Errors:   r.Customers.Errors + r.Waskat.Errors,
	}
}
