package validate

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	phoneRegexp = regexp.MustCompile(`^(\+234|0)[789][01]\d{8}$`)
	ninRegexp   = regexp.MustCompile(`^\d{11}$`)
	otpRegexp   = regexp.MustCompile(`^\d{6}$`)
	nameRegexp  = regexp.MustCompile(`^[a-zA-Z\s]{2,100}$`)
)

func init() {
	validate = validator.New()

	validate.RegisterValidation("ngphone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
	validate.RegisterValidation("nin", func(fl validator.FieldLevel) bool {
		return ninRegexp.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("otp", func(fl validator.FieldLevel) bool {
		return otpRegexp.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return nameRegexp.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	validate.RegisterValidation("refcode", func(fl validator.FieldLevel) bool {
		return IsReferralCode(fl.Field().String())
	})
}

func Struct(s interface{}) error {
	return validate.Struct(s)
}

func IsPhone(phone string) bool {
	return phoneRegexp.MatchString(phone)
}

// IsStrongPassword requires at least 8 characters with an upper case letter,
// a lower case letter, a digit and a special character.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}
