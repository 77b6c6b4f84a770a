package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type contact struct {
	Phone string `json:"phone" validate:"phone10"`
	Email string `json:"email" validate:"basic_email"`
}

type card struct {
	Number string `json:"number" validate:"card16"`
	CVC    string `json:"cvc" validate:"cvc"`
}

func TestPhone(t *testing.T) {
	assert.Nil(t, Validate(contact{Phone: "0771234567", Email: "a@b.co"}, nil))
	assert.Nil(t, Validate(contact{Phone: "077 123 4567", Email: "a@b.co"}, nil))
	assert.Contains(t, Validate(contact{Phone: "077123456", Email: "a@b.co"}, nil), "phone")
	assert.Contains(t, Validate(contact{Phone: "07712345678", Email: "a@b.co"}, nil), "phone")
}

func TestEmail(t *testing.T) {
	assert.Nil(t, Validate(contact{Phone: "0771234567", Email: "kamal@example.com"}, nil))
	errs := Validate(contact{Phone: "0771234567", Email: "not-an-email"}, nil)
	assert.Equal(t, "Invalid email format", errs["email"])
}

func TestCard(t *testing.T) {
	assert.Nil(t, Validate(card{Number: "4111 1111 1111 1111", CVC: "123"}, nil))
	assert.Contains(t, Validate(card{Number: "411111111111111", CVC: "123"}, nil), "number")
	assert.Contains(t, Validate(card{Number: "41111111111111111", CVC: "123"}, nil), "number")
	assert.Contains(t, Validate(card{Number: "4111111111111111", CVC: "12"}, nil), "cvc")
	assert.Nil(t, Validate(card{Number: "4111111111111111", CVC: "1234"}, nil))
}

func TestMessageOverride(t *testing.T) {
	errs := Validate(contact{Phone: "1", Email: "x"}, map[string]string{"phone": "bad phone"})
	assert.Equal(t, "bad phone", errs["phone"])
	assert.Equal(t, "Invalid email format", errs["email"])
}
