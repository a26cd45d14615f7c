package validate

import (
	"regexp"
	"strings"
)

const (
	minPasswordLen  = 8
	passwordSymbols = "!@#$%^&*()-_=+[]{};:,.?"

	msgRequired = "is required"
	msgEmail    = "must be a valid email address"
)

// Address shape is deliberately simple: something@something.tld.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Registration is the payload checked before a user is created.
type Registration struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
}

// Login is the payload checked before credentials are verified.
type Login struct {
	Email    string
	Password string
}

// Result carries at most one error message per payload field. A zero Result
// means the payload passed every rule.
type Result struct {
	FirstName    string `json:"first_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Password     string `json:"password,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Country      string `json:"country,omitempty"`
	General      string `json:"general,omitempty"`
}

// Valid reports whether no rule was violated.
func (r Result) Valid() bool {
	return r == Result{}
}

// Error wraps a failed Result so services can return it through an error
// chain and handlers can recover the field messages with errors.As.
type Error struct {
	Result Result
}

func (e *Error) Error() string {
	return "validation failed"
}

// Validate evaluates every rule and reports the complete set of violations;
// it never stops at the first failing field.
func (in Registration) Validate() Result {
	var r Result

	if isBlank(in.FirstName) {
		r.FirstName = msgRequired
	}
	if isBlank(in.AddressLine1) {
		r.AddressLine1 = msgRequired
	}
	if isBlank(in.City) {
		r.City = msgRequired
	}
	if isBlank(in.State) {
		r.State = msgRequired
	}
	if isBlank(in.PostalCode) {
		r.PostalCode = msgRequired
	}
	if isBlank(in.Country) {
		r.Country = msgRequired
	}

	switch {
	case isBlank(in.Email):
		r.Email = msgRequired
	case !emailPattern.MatchString(in.Email):
		r.Email = msgEmail
	}

	if isBlank(in.Password) {
		r.Password = msgRequired
	} else if msg := passwordComplexity(in.Password); msg != "" {
		r.Password = msg
	}

	return r
}

// Validate checks the login payload. Only presence is enforced; shape and
// complexity are registration-time concerns.
func (in Login) Validate() Result {
	var r Result

	if isBlank(in.Email) {
		r.Email = msgRequired
	}
	if isBlank(in.Password) {
		r.Password = msgRequired
	}

	return r
}

// passwordComplexity returns an empty string for an acceptable password, or
// a message naming every rule the password breaks.
func passwordComplexity(password string) string {
	var broken []string

	if len(password) < minPasswordLen {
		broken = append(broken, "must be at least 8 characters")
	}

	var upper, lower, digit, symbol bool
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, c):
			symbol = true
		}
	}
	if !upper {
		broken = append(broken, "must contain an uppercase letter")
	}
	if !lower {
		broken = append(broken, "must contain a lowercase letter")
	}
	if !digit {
		broken = append(broken, "must contain a digit")
	}
	if !symbol {
		broken = append(broken, "must contain a symbol ("+passwordSymbols+")")
	}

	return strings.Join(broken, "; ")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
