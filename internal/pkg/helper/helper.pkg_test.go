package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 102.000", FormatRupiah(102000))
	assert.Equal(t, "Rp 0", FormatRupiah(0))
	assert.Equal(t, "Rp 1.250.000", FormatRupiah(1250000))
	assert.Equal(t, "-Rp 500", FormatRupiah(-500))
}

func TestStringToRupiah(t *testing.T) {
	for _, in := range []string{"102000", "Rp 102.000", "Rp.102.000", " Rp102.000 "} {
		got, err := StringToRupiah(in)
		require.NoError(t, err, in)
		assert.Equal(t, int64(102000), got, in)
	}

	_, err := StringToRupiah("seratus")
	assert.Error(t, err)
}

func TestParseCommaSeperatedString(t *testing.T) {
	assert.Empty(t, ParseCommaSeperatedString(""))
	assert.Equal(t, []string{"https://a.example", "https://b.example"},
		ParseCommaSeperatedString(" https://a.example, ,https://b.example "))
}

func TestISOTimestamp(t *testing.T) {
	ts := time.Date(2024, 5, 1, 17, 4, 5, 123456789, time.FixedZone("WIB", 7*3600))
	assert.Equal(t, "2024-05-01T10:04:05.123Z", ISOTimestamp(ts))
}

func TestJSONCompact(t *testing.T) {
	out, err := JSONCompact(map[string]string{"url": "https://x.example/?a=1&b=<2>"})
	require.NoError(t, err)
	assert.Equal(t, `{"url":"https://x.example/?a=1&b=<2>"}`, string(out))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("DELEGASI_PAY_TEST_VALUE", "")
	assert.Equal(t, "fallback", GetEnv("DELEGASI_PAY_TEST_VALUE", "fallback"))

	t.Setenv("DELEGASI_PAY_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("DELEGASI_PAY_TEST_VALUE", "fallback"))
}
