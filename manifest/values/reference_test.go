package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseReference(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind RefKind
		wantErr  bool
	}{
		{"parent", "parent", RefParent, false},
		{"self", "self", RefSelf, false},
		{"framework", "framework", RefFramework, false},
		{"debug", "debug", RefDebug, false},
		{"void", "void", RefVoid, false},
		{"all", "all", RefAll, false},
		{"named", "#logger", RefNamed, false},
		{"child in collection", "#coll:worker", RefChild, false},
		{"empty", "", RefInvalid, true},
		{"bare hash", "#", RefInvalid, true},
		{"unknown tag", "sibling", RefInvalid, true},
		{"bad name", "#no/slash", RefInvalid, true},
		{"bad collection", "#no/slash:worker", RefInvalid, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseReference(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, ref.Kind())
			assert.Equal(t, tt.input, ref.String())
		})
	}
}

func Test_ParseReference_ErrorNamesAllowedSet(t *testing.T) {
	_, err := ParseReference("sibling")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"parent"`)
	assert.Contains(t, err.Error(), `"#<name>"`)
}

func Test_Reference_ChildCollection(t *testing.T) {
	ref := MustReference("#coll:worker")
	assert.Equal(t, "worker", ref.Name().String())
	assert.Equal(t, "coll", ref.Collection().String())

	plain := MustReference("#logger")
	assert.Equal(t, "logger", plain.Name().String())
	assert.True(t, plain.Collection().IsEmpty())
}

func Test_Reference_Equals(t *testing.T) {
	assert.True(t, MustReference("#a").Equals(MustReference("#a")))
	assert.False(t, MustReference("#a").Equals(MustReference("#b")))
	assert.False(t, SelfRef().Equals(ParentRef()))
	assert.True(t, Reference{}.IsZero())
}

func Test_Reference_JSON(t *testing.T) {
	original := MustReference("#coll:worker")

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"#coll:worker"`, string(data))

	var decoded Reference
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equals(decoded))
}
