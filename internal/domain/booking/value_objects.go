package booking

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName    = errors.New("name is required")
	ErrInvalidEmail = errors.New("invalid email address")
)

type Contact struct {
	name  string
	email string
	phone string
}

func NewContact(name, email, phone string) (Contact, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return Contact{}, ErrEmptyName
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return Contact{}, ErrInvalidEmail
	}
	return Contact{name: name, email: email, phone: strings.TrimSpace(phone)}, nil
}

func (c Contact) Name() string  { return c.name }
func (c Contact) Email() string { return c.email }
func (c Contact) Phone() string { return c.phone }
