package types

// Kind names one of the two user-facing record categories.
type Kind string

// Record kinds. The admin credential table is deliberately not a Kind.
const (
	KindCustomer Kind = "customer"
	KindWaskat   Kind = "waskat"
)

// Kinds lists the record kinds in the order backups and restores visit them.
var Kinds = []Kind{KindCustomer, KindWaskat}

// String returns the kind name.
func (k Kind) String() string { return string(k) }

// Valid reports whether k is one of the record kinds.
func (k Kind) Valid() bool {
	return k == KindCustomer || k == KindWaskat
}

// ParseKind converts a caller-supplied name into a Kind.
// Returns ErrInvalidKind for anything other than "customer" or "waskat".
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

// New returns an empty record of kind k, or nil if k is not valid.
func (k Kind) New() Record {
	switch k {
	case KindCustomer:
		return &Customer{}
	case KindWaskat:
		return &Waskat{}
	default:
		return nil
	}
}
