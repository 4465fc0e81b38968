package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildReferralURL(t *testing.T) {
	assert.Equal(t,
		"https://minniemissions.app/qr/u1",
		BuildReferralURL("https://minniemissions.app", "u1", ""),
	)
	assert.Equal(t,
		"https://minniemissions.app/qr/u1/m3",
		BuildReferralURL("https://minniemissions.app/", "u1", "m3"),
	)
}
