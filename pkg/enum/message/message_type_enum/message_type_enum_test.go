package message_type_enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var table = []struct {
	name string
	code int
}{
	{"UNKNOWN", 0},
	{"ERROR", 1},
	{"NOTIFICATION", 2},
	{"USER_TEXT_MESSAGE", 3},
	{"GROUP_TEXT_MESSAGE", 4},
	{"ALERT", 5},
}

func TestCodeOf(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	for _, tt := range table {
		got, err := CodeOf(tt.name)
		require.NoError(err, tt.name)
		assert.Equal(tt.code, int(got), tt.name)
	}
}

func TestNameOf(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	for _, tt := range table {
		got, err := NameOf(tt.code)
		require.NoError(err, tt.code)
		assert.Equal(tt.name, got)
	}
}

func TestRoundTrip(t *testing.T) {
	assert := assert.New(t)
	for _, tt := range table {
		code, err := CodeOf(tt.name)
		assert.NoError(err)
		name, err := NameOf(int(code))
		assert.NoError(err)
		assert.Equal(tt.name, name)

		name, _ = NameOf(tt.code)
		code, _ = CodeOf(name)
		assert.Equal(tt.code, int(code))
	}
}

func TestUnknown(t *testing.T) {
	assert := assert.New(t)

	_, err := CodeOf("BOGUS")
	assert.ErrorIs(err, ErrUnknownMessageType)
	_, err = CodeOf("alert")
	assert.ErrorIs(err, ErrUnknownMessageType)

	_, err = NameOf(99)
	assert.ErrorIs(err, ErrUnknownMessageType)
	_, err = NameOf(-1)
	assert.ErrorIs(err, ErrUnknownMessageType)

	assert.False(MessageType(99).Valid())
	assert.Equal("MessageType(99)", MessageType(99).String())
}

func TestRegistry(t *testing.T) {
	assert := assert.New(t)

	seen := map[int]bool{}
	for _, v := range Values() {
		assert.False(seen[int(v)], "duplicate code %d", v)
		seen[int(v)] = true
		assert.True(v.Valid())
	}
	assert.Len(seen, len(table))
	for _, tt := range table {
		assert.True(seen[tt.code])
	}

	dict := Dictionary()
	assert.Len(dict, len(table))
	for _, tt := range table {
		assert.Equal(tt.code, dict[tt.name])
	}

	choices := Choices()
	assert.Len(choices, len(table))
	assert.Equal(Choice{Value: 4, Name: "GROUP_TEXT_MESSAGE"}, choices[4])

	// Values 返回副本
	vs := Values()
	vs[0] = Alert
	assert.Equal(Unknown, Values()[0])
}

func TestJSON(t *testing.T) {
	assert := assert.New(t)

	j, err := json.Marshal(struct {
		T MessageType `json:"messageType"`
	}{Notification})
	assert.NoError(err)
	assert.JSONEq(`{"messageType":2}`, string(j))

	var v struct {
		T MessageType `json:"messageType"`
	}
	assert.NoError(json.Unmarshal([]byte(`{"messageType":5}`), &v))
	assert.Equal(Alert, v.T)

	assert.ErrorIs(json.Unmarshal([]byte(`{"messageType":42}`), &v), ErrUnknownMessageType)
	assert.ErrorIs(json.Unmarshal([]byte(`{"messageType":"ALERT"}`), &v), ErrUnknownMessageType)
}
