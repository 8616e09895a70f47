package types

import "time"

// Waskat is the measurement profile for a waistcoat. It shares the naming of
// Customer but has its own, smaller set of measurements and no flags.
type Waskat struct {
	ID          int64  `db:"id" json:"id" csv:"id"`
	Name        string `db:"name" json:"name" csv:"name"`
	PhoneNumber string `db:"phoneNumber" json:"phoneNumber" csv:"phoneNumber"`

	Qad    string `db:"qad" json:"qad" csv:"qad"`
	Shana  string `db:"shana" json:"shana" csv:"shana"`
	Baghal string `db:"baghal" json:"baghal" csv:"baghal"`
	Kamar  string `db:"kamar" json:"kamar" csv:"kamar"`
	Soreen string `db:"soreen" json:"soreen" csv:"soreen"`
	Astin  string `db:"astin" json:"astin" csv:"astin"`

	Yakhan      string `db:"yakhan" json:"yakhan" csv:"yakhan"`
	YakhanValue string `db:"yakhanValue" json:"yakhanValue" csv:"yakhanValue"`

	Farmaish         string `db:"farmaish" json:"farmaish" csv:"farmaish"`
	RegistrationDate string `db:"registrationDate" json:"registrationDate" csv:"registrationDate"`
}

// Kind returns KindWaskat.
func (w *Waskat) Kind() Kind { return KindWaskat }

// RecordID returns the primary key, zero before insert.
func (w *Waskat) RecordID() int64 { return w.ID }

// Normalize sets RegistrationDate to today when it is empty.
func (w *Waskat) Normalize(now time.Time) {
	if w.RegistrationDate == "" {
		w.RegistrationDate = Today(now)
	}
}
