package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockjoin/engine/internal/record"
	"github.com/blockjoin/engine/internal/schema"
)

func TestPartRoundTrip(t *testing.T) {
	p := schema.Part{
		PartKey: 1, Name: "A", Mfgr: "m", Brand: "b", Type: "t",
		Size: 4, Container: "box", RetailPrice: 1.5, Comment: "c",
	}
	rec := p.ToRecord()
	got, err := schema.PartFromRecord(rec)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestPartSuppRoundTrip(t *testing.T) {
	ps := schema.PartSupp{PartKey: 1, SuppKey: 10, AvailQty: 5, SupplyCost: 1.5, Comment: "c"}
	rec := ps.ToRecord()
	got, err := schema.PartSuppFromRecord(rec)
	require.NoError(t, err)
	require.Equal(t, ps, got)
}

func TestPartFromCSV(t *testing.T) {
	line := "1|A|m|b|t|4|box|1.5|c"
	p, err := schema.PartFromCSV(line)
	require.NoError(t, err)
	require.Equal(t, int32(1), p.PartKey)
	require.Equal(t, "A", p.Name)
	require.Equal(t, float32(1.5), p.RetailPrice)
}

func TestPartFromCSVTrailingEmptyField(t *testing.T) {
	line := "1|A|m|b|t|4|box|1.5|"
	p, err := schema.PartFromCSV(line)
	require.NoError(t, err)
	require.Equal(t, "", p.Comment)
}

func TestPartFromCSVNonNumericPartKey(t *testing.T) {
	_, err := schema.PartFromCSV("x|A|m|b|t|4|box|1.5|c")
	require.Error(t, err)
}

func TestPartFromCSVWhitespaceTrimmed(t *testing.T) {
	p, err := schema.PartFromCSV(" 1 |A|m|b|t| 4 |box| 1.5 |c")
	require.NoError(t, err)
	require.Equal(t, int32(1), p.PartKey)
	require.Equal(t, int32(4), p.Size)
}

func TestPartFromRecordToleratesExcessFields(t *testing.T) {
	rec := schema.Part{PartKey: 1, Name: "A", Mfgr: "m", Brand: "b", Type: "t",
		Size: 4, Container: "box", RetailPrice: 1.5, Comment: "c"}.ToRecord()
	rec.Fields = append(rec.Fields, []byte("extra"))
	p, err := schema.PartFromRecord(rec)
	require.NoError(t, err)
	require.Equal(t, int32(1), p.PartKey)
}

func TestPartFromRecordTooFewFields(t *testing.T) {
	_, err := schema.PartFromRecord(record.NewFromStrings("1", "A", "m"))
	require.Error(t, err)
}

func TestJoinResultFieldOrder(t *testing.T) {
	jr := schema.JoinResult{
		Part:     schema.Part{PartKey: 1, Name: "A", Mfgr: "m", Brand: "b", Type: "t", Size: 4, Container: "box", RetailPrice: 1.5, Comment: "pc"},
		PartSupp: schema.PartSupp{PartKey: 1, SuppKey: 10, AvailQty: 5, SupplyCost: 2.5, Comment: "psc"},
	}
	rec := jr.ToRecord()
	require.Equal(t, schema.JoinResultFieldCount, rec.FieldCount())
	require.Equal(t, "A", rec.Field(1))
	require.Equal(t, "10", rec.Field(9))
	require.Equal(t, "psc", rec.Field(13))
}
