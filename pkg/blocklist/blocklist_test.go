package blocklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBlockedExactMatch(t *testing.T) {
	assert.True(t, IsBlocked("10.1.2.3", "10.1.2.3"))
	assert.False(t, IsBlocked("10.1.2.4", "10.1.2.3"))
}

func TestIsBlockedCIDR(t *testing.T) {
	assert.True(t, IsBlocked("10.1.2.3", "10.0.0.0/8"))
	assert.False(t, IsBlocked("11.1.2.3", "10.0.0.0/8"))
	assert.True(t, IsBlocked("2001:db8::1", "2001:db8::/32"))
}

func TestIsBlockedMixedList(t *testing.T) {
	list := "192.168.1.50, 10.0.0.0/8,2001:db8::/32"
	assert.True(t, IsBlocked("192.168.1.50", list))
	assert.True(t, IsBlocked("10.200.0.1", list))
	assert.True(t, IsBlocked("2001:db8:1::9", list))
	assert.False(t, IsBlocked("8.8.8.8", list))
}

func TestIsBlockedFamilyMismatch(t *testing.T) {
	// An IPv6 candidate never matches an IPv4 range, and vice versa.
	assert.False(t, IsBlocked("2001:db8::1", "10.0.0.0/8"))
	assert.False(t, IsBlocked("10.1.2.3", "2001:db8::/32"))
	// The 4-in-6 mapped range would textually contain any IPv4 address.
	assert.False(t, IsBlocked("10.1.2.3", "::/0"))
}

func TestIsBlockedMalformedEntriesSkipped(t *testing.T) {
	assert.True(t, IsBlocked("10.1.2.3", "not-a-cidr/99,,10.1.2.3"))
	assert.False(t, IsBlocked("10.1.2.3", "bogus/12"))
}

func TestIsBlockedEmptyInputs(t *testing.T) {
	assert.False(t, IsBlocked("", "10.0.0.0/8"))
	assert.False(t, IsBlocked("10.1.2.3", ""))
	assert.False(t, IsBlocked("not-an-ip", "10.0.0.0/8"))
}
