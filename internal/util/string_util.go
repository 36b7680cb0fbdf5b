package util

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators   = regexp.MustCompile(`[\s_-]+`)
)

// GenerateSlug 小寫, 移除非文字字元, 空白與底線轉為單一 "-"
func GenerateSlug(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// HashToken sha256 hex, refresh token 與 OTP 只存雜湊
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// GenerateReferralCode 4碼隨機 + base36 時間戳
func GenerateReferralCode(now time.Time) string {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:4]
	return strings.ToUpper(random + strconv.FormatInt(now.UnixMilli(), 36))
}

// GenerateOTP 產生指定位數的數字驗證碼
func GenerateOTP(length int) (string, error) {
	return RandomDigits(length)
}

// RandomDigits 產生固定位數(補0)的隨機數字字串
func RandomDigits(width int) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(width)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	s := n.Text(10)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s, nil
}

// GenerateOrderNumber prefix + 毫秒時間戳 + 隨機碼, 每次重試多一位隨機數
func GenerateOrderNumber(prefix string, now time.Time, attempt int) (string, error) {
	suffix, err := RandomDigits(3 + attempt)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d%s", prefix, now.UnixMilli(), suffix), nil
}
