package pagination_test

import (
	"testing"
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	date := time.Date(2025, time.July, 3, 10, 30, 0, 123456789, time.UTC)

	token := pagination.EncodeToken(date, 9912)
	gotDate, gotSeq, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, date.Equal(gotDate))
	assert.Equal(t, int64(9912), gotSeq)
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("bm8tc2VwYXJhdG9y") // "no-separator"
	assert.Error(t, err)
}
