package util

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"Jollof Rice", "jollof-rice"},
		{"  Spicy   Suya!! ", "spicy-suya"},
		{"Egusi_Soup -- Special", "egusi-soup-special"},
		{"Chef's Choice (Large)", "chefs-choice-large"},
		{"---", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, GenerateSlug(tc.in))
		})
	}
}

func TestHashToken(t *testing.T) {
	h := HashToken("refresh-token")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashToken("refresh-token"))
	assert.NotEqual(t, h, HashToken("refresh-token2"))
}

func TestRandomDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		s, err := RandomDigits(6)
		require.NoError(t, err)
		require.Len(t, s, 6)
		assert.Equal(t, "", strings.Trim(s, "0123456789"))
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.UnixMilli(1767225600000)

	first, err := GenerateOrderNumber("CK", now, 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first, "CK1767225600000"))
	assert.Len(t, first, len("CK1767225600000")+3)

	// 重試時隨機碼變長
	retry, err := GenerateOrderNumber("CK", now, 2)
	require.NoError(t, err)
	assert.Len(t, retry, len("CK1767225600000")+5)
}

func TestGenerateReferralCode(t *testing.T) {
	code := GenerateReferralCode(time.Now())
	assert.Equal(t, strings.ToUpper(code), code)
	assert.GreaterOrEqual(t, len(code), 10)
	assert.NotEqual(t, code, GenerateReferralCode(time.Now()))
}
