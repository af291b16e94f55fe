package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/filmhub/filmhub/internal/domain/shared"
)

var now = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func validUser() *User {
	return &User{
		Email:    "dolore@mail.ru",
		Login:    "dolore",
		Name:     "Nick Name",
		Birthday: shared.NewDate(1946, time.August, 20),
	}
}

func TestUserValidate_Valid(t *testing.T) {
	u := validUser()
	assert.NoError(t, u.Validate(now))
}

func TestUserValidate_Email(t *testing.T) {
	cases := []struct {
		name  string
		email string
		ok    bool
	}{
		{"empty", "", false},
		{"no at sign", "mail.ru", false},
		{"with at sign", "dolore@mail.ru", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := validUser()
			u.Email = tc.email
			err := u.Validate(now)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, shared.IsInvalidInput(err))
			}
		})
	}
}

func TestUserValidate_Login(t *testing.T) {
	cases := []struct {
		name  string
		login string
		ok    bool
	}{
		{"empty", "", false},
		{"inner space", "dolore ullamco", false},
		{"tab", "dolore\tullamco", false},
		{"plain", "dolore", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := validUser()
			u.Login = tc.login
			err := u.Validate(now)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, shared.IsInvalidInput(err))
			}
		})
	}
}

func TestUserValidate_BlankNameTakesLogin(t *testing.T) {
	u := validUser()
	u.Name = ""
	assert.NoError(t, u.Validate(now))
	assert.Equal(t, "dolore", u.Name)

	u = validUser()
	u.Name = "  \t "
	assert.NoError(t, u.Validate(now))
	assert.Equal(t, "dolore", u.Name)
}

func TestUserValidate_Birthday(t *testing.T) {
	u := validUser()
	u.Birthday = shared.DateOf(now)
	assert.NoError(t, u.Validate(now), "birthday today is allowed")

	u.Birthday = shared.DateOf(now.AddDate(0, 0, 1))
	assert.True(t, shared.IsInvalidInput(u.Validate(now)))
}

func TestUserValidate_Order(t *testing.T) {
	// Every rule broken at once: the email rule wins.
	u := &User{
		Email:    "no-at-sign",
		Login:    "bad login",
		Birthday: shared.DateOf(now.AddDate(1, 0, 0)),
	}
	err := u.Validate(now)
	assert.ErrorContains(t, err, "email")
}
