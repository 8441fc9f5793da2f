package values

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "coll", false},
		{"dots and hyphens", "fuchsia.logger.LogSink", false},
		{"leading underscore", "_private", false},
		{"leading digit", "2fast", false},
		{"empty", "", true},
		{"leading dot", ".hidden", true},
		{"leading hyphen", "-x", true},
		{"slash", "a/b", true},
		{"space", "a b", true},
		{"at max length", strings.Repeat("a", MaxNameLength), false},
		{"over max length", strings.Repeat("a", MaxNameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.input, n.String())
			}
		})
	}
}

func Test_NewLongName(t *testing.T) {
	long := strings.Repeat("a", MaxLongNameLength)

	_, err := NewName(long)
	assert.Error(t, err)

	n, err := NewLongName(long)
	require.NoError(t, err)
	assert.Equal(t, long, n.String())

	_, err = NewLongName(long + "a")
	assert.Error(t, err)
}

func Test_MustName_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustName("")
	})
}

func Test_Name_Equals(t *testing.T) {
	a := MustName("logger")
	b := MustName("driver")
	c := MustName("logger")

	assert.False(t, a.Equals(b))
	assert.True(t, a.Equals(c))
	assert.True(t, Name{}.IsEmpty())
	assert.False(t, a.IsEmpty())
}

func Test_Name_JSON(t *testing.T) {
	original := MustName("logger")

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"logger"`, string(data))

	var decoded Name
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equals(decoded))

	var bad Name
	assert.Error(t, json.Unmarshal([]byte(`"no/slash"`), &bad))
}
