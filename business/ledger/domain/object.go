package domain

import (
	"fmt"
	"math/big"
)

// ObjectRecord is a snapshot of one owned on-chain object.
type ObjectRecord struct {
	ObjectID string
	// Type is the full type tag of the object.
	Type string
	// Version is the object version at read time.
	Version uint64
	// Fields holds the object's top-level fields; scalar values are strings.
	Fields map[string]string
}

// Field returns the named field value, if present.
func (o *ObjectRecord) Field(name string) (string, bool) {
	v, ok := o.Fields[name]
	return v, ok
}

// FieldBig decodes the named field as an unsigned integer. A missing field
// decodes as zero.
func (o *ObjectRecord) FieldBig(name string) (*big.Int, error) {
	raw, ok := o.Fields[name]
	if !ok || raw == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("object %s: field %q is not an integer: %q", o.ObjectID, name, raw)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("object %s: field %q is negative: %s", o.ObjectID, name, v)
	}
	return v, nil
}
