// Package schema supplies the typed, positional interpretations of a
// record.Record that the rest of this module needs: PART, PARTSUPP, and the
// join result shape that carries both. A record.Record itself is untyped;
// schema is the caller-supplied contract for what its fields mean.
package schema

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/blockjoin/engine/internal/record"
)

// Kind names the two source table schemas the join engine understands.
type Kind string

const (
	Part     Kind = "PART"
	PartSupp Kind = "PARTSUPP"
)

// Part is the 9-field TPC-H PART row.
type Part struct {
	PartKey     int32
	Name        string
	Mfgr        string
	Brand       string
	Type        string
	Size        int32
	Container   string
	RetailPrice float32
	Comment     string
}

// PartSuppFieldCount and PartFieldCount are the minimum field counts schema
// records require to decode: a record needs at least the schema's field
// count, and excess fields are ignored.
const (
	PartFieldCount     = 9
	PartSuppFieldCount = 5
	JoinResultFieldCount = PartFieldCount + PartSuppFieldCount
)

// ToRecord serialises a Part into its positional record.Record form.
func (p Part) ToRecord() record.Record {
	return record.NewFromStrings(
		strconv.FormatInt(int64(p.PartKey), 10),
		p.Name,
		p.Mfgr,
		p.Brand,
		p.Type,
		strconv.FormatInt(int64(p.Size), 10),
		p.Container,
		formatFloat(p.RetailPrice),
		p.Comment,
	)
}

// PartFromRecord interprets rec's fields positionally as a PART row. It
// fails if rec has fewer than PartFieldCount fields or a numeric field does
// not parse; excess fields beyond PartFieldCount are ignored.
func PartFromRecord(rec record.Record) (Part, error) {
	if rec.FieldCount() < PartFieldCount {
		return Part{}, errors.Newf("schema: PART record has %d fields, want at least %d", errors.Safe(rec.FieldCount()), errors.Safe(PartFieldCount))
	}
	partKey, err := parseInt32(rec.Field(0), "PART.partkey")
	if err != nil {
		return Part{}, err
	}
	size, err := parseInt32(rec.Field(5), "PART.size")
	if err != nil {
		return Part{}, err
	}
	price, err := parseFloat32(rec.Field(7), "PART.retailprice")
	if err != nil {
		return Part{}, err
	}
	return Part{
		PartKey:     partKey,
		Name:        rec.Field(1),
		Mfgr:        rec.Field(2),
		Brand:       rec.Field(3),
		Type:        rec.Field(4),
		Size:        size,
		Container:   rec.Field(6),
		RetailPrice: price,
		Comment:     rec.Field(8),
	}, nil
}

// PartFromCSV parses a pipe-delimited text line matching PART's field order.
func PartFromCSV(line string) (Part, error) {
	fields := strings.Split(line, "|")
	if len(fields) < PartFieldCount {
		return Part{}, errors.Newf("schema: PART CSV line has %d fields, want at least %d", errors.Safe(len(fields)), errors.Safe(PartFieldCount))
	}
	partKey, err := parseInt32(fields[0], "PART.partkey (CSV)")
	if err != nil {
		return Part{}, err
	}
	size, err := parseInt32(fields[5], "PART.size (CSV)")
	if err != nil {
		return Part{}, err
	}
	price, err := parseFloat32(fields[7], "PART.retailprice (CSV)")
	if err != nil {
		return Part{}, err
	}
	return Part{
		PartKey:     partKey,
		Name:        fields[1],
		Mfgr:        fields[2],
		Brand:       fields[3],
		Type:        fields[4],
		Size:        size,
		Container:   fields[6],
		RetailPrice: price,
		Comment:     fields[8],
	}, nil
}

// PartSupp is the 5-field TPC-H PARTSUPP row.
type PartSupp struct {
	PartKey     int32
	SuppKey     int32
	AvailQty    int32
	SupplyCost  float32
	Comment     string
}

// ToRecord serialises a PartSupp into its positional record.Record form.
func (ps PartSupp) ToRecord() record.Record {
	return record.NewFromStrings(
		strconv.FormatInt(int64(ps.PartKey), 10),
		strconv.FormatInt(int64(ps.SuppKey), 10),
		strconv.FormatInt(int64(ps.AvailQty), 10),
		formatFloat(ps.SupplyCost),
		ps.Comment,
	)
}

// PartSuppFromRecord interprets rec's fields positionally as a PARTSUPP row.
func PartSuppFromRecord(rec record.Record) (PartSupp, error) {
	if rec.FieldCount() < PartSuppFieldCount {
		return PartSupp{}, errors.Newf("schema: PARTSUPP record has %d fields, want at least %d", errors.Safe(rec.FieldCount()), errors.Safe(PartSuppFieldCount))
	}
	partKey, err := parseInt32(rec.Field(0), "PARTSUPP.partkey")
	if err != nil {
		return PartSupp{}, err
	}
	suppKey, err := parseInt32(rec.Field(1), "PARTSUPP.suppkey")
	if err != nil {
		return PartSupp{}, err
	}
	availQty, err := parseInt32(rec.Field(2), "PARTSUPP.availqty")
	if err != nil {
		return PartSupp{}, err
	}
	cost, err := parseFloat32(rec.Field(3), "PARTSUPP.supplycost")
	if err != nil {
		return PartSupp{}, err
	}
	return PartSupp{
		PartKey:    partKey,
		SuppKey:    suppKey,
		AvailQty:   availQty,
		SupplyCost: cost,
		Comment:    rec.Field(4),
	}, nil
}

// PartSuppFromCSV parses a pipe-delimited text line matching PARTSUPP's
// field order.
func PartSuppFromCSV(line string) (PartSupp, error) {
	fields := strings.Split(line, "|")
	if len(fields) < PartSuppFieldCount {
		return PartSupp{}, errors.Newf("schema: PARTSUPP CSV line has %d fields, want at least %d", errors.Safe(len(fields)), errors.Safe(PartSuppFieldCount))
	}
	partKey, err := parseInt32(fields[0], "PARTSUPP.partkey (CSV)")
	if err != nil {
		return PartSupp{}, err
	}
	suppKey, err := parseInt32(fields[1], "PARTSUPP.suppkey (CSV)")
	if err != nil {
		return PartSupp{}, err
	}
	availQty, err := parseInt32(fields[2], "PARTSUPP.availqty (CSV)")
	if err != nil {
		return PartSupp{}, err
	}
	cost, err := parseFloat32(fields[3], "PARTSUPP.supplycost (CSV)")
	if err != nil {
		return PartSupp{}, err
	}
	return PartSupp{
		PartKey:    partKey,
		SuppKey:    suppKey,
		AvailQty:   availQty,
		SupplyCost: cost,
		Comment:    fields[4],
	}, nil
}

// JoinResult is the 14-field PART+PARTSUPP join row: the nine PART fields
// followed by the five PARTSUPP fields, regardless of which table was the
// BNLJ outer side.
type JoinResult struct {
	Part     Part
	PartSupp PartSupp
}

// ToRecord serialises a JoinResult into its positional record.Record form.
func (j JoinResult) ToRecord() record.Record {
	part := j.Part.ToRecord()
	ps := j.PartSupp.ToRecord()
	fields := make([][]byte, 0, JoinResultFieldCount)
	fields = append(fields, part.Fields...)
	fields = append(fields, ps.Fields...)
	return record.Record{Fields: fields}
}

// JoinResultFromRecord interprets rec's fields positionally as a JoinResult
// row: the first PartFieldCount fields as PART, the remaining
// PartSuppFieldCount as PARTSUPP.
func JoinResultFromRecord(rec record.Record) (JoinResult, error) {
	if rec.FieldCount() < JoinResultFieldCount {
		return JoinResult{}, errors.Newf("schema: join result record has %d fields, want at least %d", errors.Safe(rec.FieldCount()), errors.Safe(JoinResultFieldCount))
	}
	part, err := PartFromRecord(record.Record{Fields: rec.Fields[:PartFieldCount]})
	if err != nil {
		return JoinResult{}, err
	}
	partSupp, err := PartSuppFromRecord(record.Record{Fields: rec.Fields[PartFieldCount:]})
	if err != nil {
		return JoinResult{}, err
	}
	return JoinResult{Part: part, PartSupp: partSupp}, nil
}

func parseInt32(s, fieldName string) (int32, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, errors.Newf("schema: empty field for %s", fieldName)
	}
	n, err := strconv.ParseInt(trimmed, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "schema: invalid integer in %s: %q", fieldName, trimmed)
	}
	return int32(n), nil
}

func parseFloat32(s, fieldName string) (float32, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, errors.Newf("schema: empty field for %s", fieldName)
	}
	f, err := strconv.ParseFloat(trimmed, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "schema: invalid float in %s: %q", fieldName, trimmed)
	}
	return float32(f), nil
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}
