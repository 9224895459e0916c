package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/ar/internal/artype"
)

func TestPut(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		width   int
		value   string
		want    string
		wantErr error
	}{
		{name: "shorter value is space padded", width: 8, value: "644", want: "644     "},
		{name: "exact width", width: 4, value: "abcd", want: "abcd"},
		{name: "empty value", width: 3, value: "", want: "   "},
		{name: "overflow", width: 2, value: "abc", wantErr: artype.ErrFieldOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := make([]byte, tt.width)
			err := Put(buf, tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(buf))
		})
	}
}

func TestDecimal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "5         ", want: 5},
		{raw: "  42      ", want: 42},
		{raw: "0         ", want: 0},
		{raw: "9999999999", want: 9999999999},
		{raw: "          ", wantErr: true},
		{raw: "-1        ", wantErr: true},
		{raw: "+1        ", wantErr: true},
		{raw: "1 2       ", wantErr: true},
		{raw: "0x10      ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, err := Decimal([]byte(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPutNumbers(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 10)
	require.NoError(t, PutDecimal(buf, 1234))
	assert.Equal(t, "1234      ", string(buf))

	require.ErrorIs(t, PutDecimal(buf, 12345678901), artype.ErrFieldOverflow)
	require.ErrorIs(t, PutDecimal(buf, -1), artype.ErrFieldOverflow)

	mode := make([]byte, 8)
	require.NoError(t, PutOctal(mode, 0o100644))
	assert.Equal(t, "100644  ", string(mode))
}

func TestTrim(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", string(Trim([]byte("  abc  "))))
	assert.Empty(t, Trim([]byte("    ")))
}
