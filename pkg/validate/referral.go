package validate

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"strings"

	"github.com/ShiraazMoollatjie/goluhn"
)

const (
	ReferralPrefix    = "ELX"
	referralDigits    = 9
	referralCodeWidth = len(ReferralPrefix) + referralDigits + 1
)

var ErrCodeGeneration = errors.New("failed to generate referral code")

func IsLuna(s string) bool {
	err := goluhn.Validate(s)
	return err == nil
}

// IsReferralCode checks the shape of a referral code: the prefix followed by
// digits whose last one is a Luhn check digit.
func IsReferralCode(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != referralCodeWidth || !strings.HasPrefix(code, ReferralPrefix) {
		return false
	}
	return IsLuna(code[len(ReferralPrefix):])
}

func NormalizeReferralCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func NewReferralCode() (string, error) {
	var sb strings.Builder
	for i := 0; i < referralDigits; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", errors.Join(ErrCodeGeneration, err)
		}
		if i == 0 && n.Int64() == 0 {
			n = big.NewInt(1)
		}
		sb.WriteString(n.String())
	}
	body := sb.String()
	for d := 0; d <= 9; d++ {
		candidate := body + strconv.Itoa(d)
		if IsLuna(candidate) {
			return ReferralPrefix + candidate, nil
		}
	}
	return "", ErrCodeGeneration
}
