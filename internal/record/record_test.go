package record_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockjoin/engine/internal/record"
)

func TestRoundTrip(t *testing.T) {
	r := record.NewFromStrings("1", "A", "", "brand", "type", "0", "box", "1.50", "a comment")
	payload := r.Payload()
	require.Equal(t, r.SerialisedPayloadSize(), len(payload))

	got, err := record.Decode(payload)
	require.NoError(t, err)
	require.Equal(t, r.FieldCount(), got.FieldCount())
	for i := range r.Fields {
		require.Equal(t, r.Field(i), got.Field(i))
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	got, err := record.Decode(nil)
	require.NoError(t, err)
	require.Equal(t, 0, got.FieldCount())
}

func TestDecodeTruncatedLengthPrefix(t *testing.T) {
	_, err := record.Decode([]byte{0x01})
	require.Error(t, err)
}

func TestDecodeTruncatedFieldData(t *testing.T) {
	// Claims a 10-byte field but supplies none.
	_, err := record.Decode([]byte{10, 0})
	require.Error(t, err)
}

func TestPayloadDoesNotIncludeFieldCount(t *testing.T) {
	r := record.NewFromStrings("x")
	// [u16 len=1]['x'] == 3 bytes total, no leading count field.
	require.Equal(t, []byte{1, 0, 'x'}, r.Payload())
}
