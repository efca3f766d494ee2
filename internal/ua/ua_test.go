package ua

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const chromeMac = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/125.0.6422.112 Safari/537.36"

func TestIsScript(t *testing.T) {
	cases := map[string]bool{
		"curl/8.5.0":        true,
		"CURL/7.68.0":       true,
		"libcurl-agent/1.0": true,
		"Wget/1.21":         false,
		"":                  false,
		chromeMac:           false,
	}
	for raw, want := range cases {
		assert.Equal(t, want, IsScript(raw), "IsScript(%q)", raw)
	}
}

func TestClass(t *testing.T) {
	assert.Equal(t, "script", Class("curl/8.5.0"))
	assert.Equal(t, "browser", Class(chromeMac))
}

func TestParse_Chrome(t *testing.T) {
	info := Parse(chromeMac)

	assert.Equal(t, "Chrome", info.Browser)
	assert.Equal(t, "Desktop", info.Device)
	assert.False(t, info.IsBot)
	assert.Contains(t, info.Summary(), "Chrome")
}

func TestParse_Empty(t *testing.T) {
	info := Parse("")
	assert.Equal(t, "Other", info.Device)
	assert.Equal(t, "Other", info.Summary())
}
