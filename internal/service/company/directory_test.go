package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupDefaults(t *testing.T) {
	d := New(nil)

	name, ok := d.Lookup("aapl")
	assert.True(t, ok)
	assert.Equal(t, "apple", name)

	_, ok = d.Lookup("ZZZZ")
	assert.False(t, ok)
}

func TestOverrides(t *testing.T) {
	d := New(map[string]string{
		" rivn ": "rivian",
		"MSFT":   "msft",
		"TSLA":   "",
	})

	name, ok := d.Lookup("RIVN")
	assert.True(t, ok)
	assert.Equal(t, "rivian", name)

	name, _ = d.Lookup("msft")
	assert.Equal(t, "msft", name)

	_, ok = d.Lookup("TSLA")
	assert.False(t, ok)
	assert.Equal(t, len(defaultNames), d.Len())
}
