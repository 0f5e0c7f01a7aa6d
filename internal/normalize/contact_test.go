package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseContact_NameAndPhone(t *testing.T) {
	c := ParseContact("John Smith 214-555-0123")

	assert.Equal(t, "John Smith", c.Name)
	assert.Equal(t, "214-555-0123", c.Phone)
	assert.Empty(t, c.Email)
}

func TestParseContact_NameConnectorPhone(t *testing.T) {
	c := ParseContact("Mary Jones at (512) 555-0188")

	assert.Equal(t, "Mary Jones", c.Name)
	assert.Equal(t, "(512) 555-0188", c.Phone)
}

func TestParseContact_Email(t *testing.T) {
	c := ParseContact("Bob Lee bob.lee@example.com")

	assert.Equal(t, "Bob Lee", c.Name)
	assert.Equal(t, "bob.lee@example.com", c.Email)
	assert.Empty(t, c.Phone)
}

func TestParseContact_AllThree(t *testing.T) {
	c := ParseContact("Ann Cole 816.555.0147 ann@fairshows.org")

	assert.Equal(t, "Ann Cole", c.Name)
	assert.Equal(t, "816.555.0147", c.Phone)
	assert.Equal(t, "ann@fairshows.org", c.Email)
}

func TestParseContact_PhoneVariants(t *testing.T) {
	for _, input := range []string{"2145550123", "214 555 0123", "(214)555-0123", "214.555.0123"} {
		c := ParseContact(input)
		assert.NotEmpty(t, c.Phone, "input %q", input)
		assert.Empty(t, c.Name, "input %q", input)
	}
}

func TestParseContact_PhoneOnly(t *testing.T) {
	c := ParseContact("555-555-0199")

	assert.Empty(t, c.Name)
	assert.Equal(t, "555-555-0199", c.Phone)
}

func TestParseContact_Empty(t *testing.T) {
	c := ParseContact("  ")
	assert.Empty(t, c.Name)
	assert.Empty(t, c.Phone)
	assert.Empty(t, c.Email)
}

func TestParseContact_TextWithoutContactDetails(t *testing.T) {
	c := ParseContact("See front desk")

	assert.Equal(t, "See front desk", c.Name)
	assert.Empty(t, c.Phone)
	assert.Empty(t, c.Email)
}
