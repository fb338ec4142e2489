package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := RegisterRequest{Account: "13800000000", Password: "secret1", Role: 0}
	assert.Nil(t, valid.Validate())

	cases := []struct {
		name  string
		req   RegisterRequest
		field string
	}{
		{"empty account", RegisterRequest{Password: "secret1", Role: 0}, "account"},
		{"bad phone", RegisterRequest{Account: "12345", Password: "secret1", Role: 0}, "account"},
		{"landline-looking account", RegisterRequest{Account: "02812345678", Password: "secret1", Role: 0}, "account"},
		{"empty password", RegisterRequest{Account: "13800000000", Role: 0}, "password"},
		{"short password", RegisterRequest{Account: "13800000000", Password: "12345", Role: 0}, "password"},
		{"role out of range", RegisterRequest{Account: "13800000000", Password: "secret1", Role: 3}, "role"},
		{"negative role", RegisterRequest{Account: "13800000000", Password: "secret1", Role: -1}, "role"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			details := tc.req.Validate()
			assert.Contains(t, details, tc.field)
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := LoginRequest{Account: "13800000000", Password: "secret1", Role: 2}
	assert.Nil(t, valid.Validate())

	// Login does not re-check the phone format; an unknown account simply
	// fails lookup. Only presence and role membership are enforced.
	loose := LoginRequest{Account: "legacy-account", Password: "secret1", Role: 1}
	assert.Nil(t, loose.Validate())

	assert.Contains(t, LoginRequest{Password: "x", Role: 0}.Validate(), "account")
	assert.Contains(t, LoginRequest{Account: "x", Role: 0}.Validate(), "password")
	assert.Contains(t, LoginRequest{Account: "x", Password: "y", Role: 9}.Validate(), "role")
}
