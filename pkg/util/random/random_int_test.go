package random

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomDigits(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("", GetRandomDigits(0))
	assert.Equal("", GetRandomDigits(-3))

	for _, n := range []int{1, 9, 11, 32} {
		s := GetRandomDigits(n)
		assert.Len(s, n)
		assert.Regexp(`^[1-9][0-9]*$`, s)
	}
}

func TestGetNowAndLenRandomString(t *testing.T) {
	s := GetNowAndLenRandomString(11)
	assert.Len(t, s, 19)
	assert.True(t, regexp.MustCompile(`^[0-9]+$`).MatchString(s))
}
