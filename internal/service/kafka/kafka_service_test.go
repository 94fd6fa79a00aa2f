package kafka

import (
	"strings"
	"testing"

	"messenger/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestGroupId(t *testing.T) {
	assert := assert.New(t)
	conf := *config.Default()

	first, second := groupId(conf), groupId(conf)
	assert.NotEqual(first, second)
	assert.True(strings.HasPrefix(first, "messenger_"))
	assert.Contains(first, "_8000_")
}
