package types

import (
	"bytes"
	"encoding/json"
	"time"
)

// Customer is a full tailoring measurement profile for a shalwar kameez.
// Measurements are kept as text because the shop records them as typed,
// including fractions and blanks.
type Customer struct {
	ID          int64  `db:"id" json:"id" csv:"id"`
	Name        string `db:"name" json:"name" csv:"name"`
	PhoneNumber string `db:"phoneNumber" json:"phoneNumber" csv:"phoneNumber"`

	Qad      string `db:"qad" json:"qad" csv:"qad"`
	BarDaman string `db:"barDaman" json:"barDaman" csv:"barDaman"`
	Baghal   string `db:"baghal" json:"baghal" csv:"baghal"`
	Shana    string `db:"shana" json:"shana" csv:"shana"`
	Astin    string `db:"astin" json:"astin" csv:"astin"`
	Tunban   string `db:"tunban" json:"tunban" csv:"tunban"`
	Pacha    string `db:"pacha" json:"pacha" csv:"pacha"`
	Daman    string `db:"daman" json:"daman" csv:"daman"`

	Yakhan      string `db:"yakhan" json:"yakhan" csv:"yakhan"`
	YakhanValue string `db:"yakhanValue" json:"yakhanValue" csv:"yakhanValue"`
	Caff        string `db:"caff" json:"caff" csv:"caff"`
	CaffValue   string `db:"caffValue" json:"caffValue" csv:"caffValue"`
	Jeeb        string `db:"jeeb" json:"jeeb" csv:"jeeb"`
	TunbanStyle string `db:"tunbanStyle" json:"tunbanStyle" csv:"tunbanStyle"`

	YakhanBin  bool `db:"yakhanBin" json:"yakhanBin" csv:"yakhanBin"`
	JeebTunban bool `db:"jeebTunban" json:"jeebTunban" csv:"jeebTunban"`

	Farmaish         string `db:"farmaish" json:"farmaish" csv:"farmaish"`
	RegistrationDate string `db:"registrationDate" json:"registrationDate" csv:"registrationDate"`
}

// Kind returns KindCustomer.
func (c *Customer) Kind() Kind { return KindCustomer }

// RecordID returns the primary key, zero before insert.
func (c *Customer) RecordID() int64 { return c.ID }

// Normalize sets RegistrationDate to today when it is empty.
func (c *Customer) Normalize(now time.Time) {
	if c.RegistrationDate == "" {
		c.RegistrationDate = Today(now)
	}
}

// customerJSON has Customer's JSON fields without its methods.
type customerJSON Customer

// MarshalJSON writes YakhanBin and JeebTunban as 0/1.
func (c Customer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		customerJSON
		YakhanBin  flag `json:"yakhanBin"`
		JeebTunban flag `json:"jeebTunban"`
	}{customerJSON(c), flag(c.YakhanBin), flag(c.JeebTunban)})
}

// UnmarshalJSON reads the flags as 0/1, booleans or "true"/"1". Unknown
// fields are rejected so a misspelled measurement is not silently dropped.
func (c *Customer) UnmarshalJSON(data []byte) error {
	aux := struct {
		*customerJSON
		YakhanBin  flag `json:"yakhanBin"`
		JeebTunban flag `json:"jeebTunban"`
	}{
		customerJSON: (*customerJSON)(c),
		YakhanBin:    flag(c.YakhanBin),
		JeebTunban:   flag(c.JeebTunban),
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&aux); err != nil {
		return err
	}
	c.YakhanBin = bool(aux.YakhanBin)
	c.JeebTunban = bool(aux.JeebTunban)
	return nil
}
