package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionIsValidSemver(t *testing.T) {
	assert.True(t, IsValid())
	assert.Equal(t, Version, GetBaseVersion())
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.String(), "statshell v"+Version)
}
