package model

import "fmt"

// DBType selects the pipeline stage namespace: which profile schema and
// which layout subtree apply.
type DBType string

const (
	DBTypeSNPs  DBType = "snps"
	DBTypeGenes DBType = "genes"
)

// String returns the string representation of the db-type.
func (d DBType) String() string {
	return string(d)
}

// Valid reports whether d is a known db-type.
func (d DBType) Valid() bool {
	switch d {
	case DBTypeSNPs, DBTypeGenes:
		return true
	}
	return false
}

// RequiresCoverage reports whether selection for this db-type also filters
// on fraction_covered. Only positional-variant data does.
func (d DBType) RequiresCoverage() bool {
	return d == DBTypeSNPs
}

// ParseDBType converts a string to a DBType.
func ParseDBType(s string) (DBType, error) {
	d := DBType(s)
	if !d.Valid() {
		return "", &PoolError{
			Code: ErrConfig,
			Op:   "parse db-type",
			Err:  fmt.Errorf("unknown db-type %q (want snps or genes)", s),
		}
	}
	return d, nil
}
