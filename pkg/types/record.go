package types

import "time"

// DateLayout is the calendar-date format of RegistrationDate.
const DateLayout = "2006-01-02"

// Record is implemented by *Customer and *Waskat so list views and the
// generic store calls can handle either kind.
type Record interface {
	Kind() Kind
	RecordID() int64
	// Normalize fills the registration date with today when it is empty.
	Normalize(now time.Time)
}

// Today formats now as a registration date.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// YakhanOptions are the collar styles the shop offers for a waskat. The store
// accepts any text; the list exists for forms and help output.
var YakhanOptions = []string{"وی v", "ګول", "یخندار"}
