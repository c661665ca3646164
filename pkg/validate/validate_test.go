package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"08031234567", true},
		{"+2348031234567", true},
		{"07011234567", true},
		{"09121234567", true},
		{"0803123456", false},
		{"06031234567", false},
		{"+2358031234567", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsPhone(tt.phone))
		})
	}
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"Strong", "Str0ng!Pass", true},
		{"Too short", "S0!a", false},
		{"No upper", "str0ng!pass", false},
		{"No lower", "STR0NG!PASS", false},
		{"No digit", "Strong!Pass", false},
		{"No special", "Str0ngPass", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsStrongPassword(tt.password))
		})
	}
}

func TestReferralCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := NewReferralCode()
		require.NoError(t, err)
		assert.Len(t, code, referralCodeWidth)
		assert.True(t, IsReferralCode(code), code)
		assert.True(t, IsReferralCode(" "+code+" "))
	}

	assert.False(t, IsReferralCode(""))
	assert.False(t, IsReferralCode("ABC1234567890"))
	assert.False(t, IsReferralCode("ELX12345"))
}

func TestIsReferralCodeRejectsBadCheckDigit(t *testing.T) {
	code, err := NewReferralCode()
	require.NoError(t, err)

	last := code[len(code)-1]
	swapped := byte('0' + (last-'0'+1)%10)
	broken := code[:len(code)-1] + string(swapped)

	assert.False(t, IsReferralCode(broken))
}

type signupPayload struct {
	Name     string `validate:"required,personname"`
	Phone    string `validate:"required,ngphone"`
	Email    string `validate:"required,email"`
	NIN      string `validate:"required,nin"`
	Password string `validate:"required,strongpwd"`
	OTP      string `validate:"omitempty,otp"`
}

func TestStruct(t *testing.T) {
	valid := signupPayload{
		Name:     "Ada Obi",
		Phone:    "08031234567",
		Email:    "ada@example.com",
		NIN:      "12345678901",
		Password: "Str0ng!Pass",
	}

	tests := []struct {
		name    string
		mutate  func(p *signupPayload)
		wantErr bool
	}{
		{name: "Valid", mutate: func(p *signupPayload) {}},
		{name: "Bad name", mutate: func(p *signupPayload) { p.Name = "A1" }, wantErr: true},
		{name: "Bad phone", mutate: func(p *signupPayload) { p.Phone = "12345" }, wantErr: true},
		{name: "Bad email", mutate: func(p *signupPayload) { p.Email = "nope" }, wantErr: true},
		{name: "Short NIN", mutate: func(p *signupPayload) { p.NIN = "1234" }, wantErr: true},
		{name: "Weak password", mutate: func(p *signupPayload) { p.Password = "password" }, wantErr: true},
		{name: "Bad OTP", mutate: func(p *signupPayload) { p.OTP = "12a456" }, wantErr: true},
		{name: "Good OTP", mutate: func(p *signupPayload) { p.OTP = "123456" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := Struct(p)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
