package envfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	samkit "github.com/samkit-io/samkit"
)

func TestParse_Basic(t *testing.T) {
	f, err := Parse([]byte("ENVIRONMENT=prod\nA2=a2_value\nDB_HOST=localhost\n"))
	require.NoError(t, err)

	assert.Equal(t, "prod", f.Stage)
	assert.Equal(t, []samkit.EnvVar{
		{Name: "A2", Value: "a2_value"},
		{Name: "DB_HOST", Value: "localhost"},
	}, f.Vars)
}

func TestParse_CommentsAndBlanks(t *testing.T) {
	data := []byte(`# stage selection
ENVIRONMENT=dev

# database
DB_HOST=localhost
  # indented comment
`)
	f, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "dev", f.Stage)
	assert.Equal(t, []string{"DB_HOST"}, f.Names())
}

func TestParse_DefaultStage(t *testing.T) {
	f, err := Parse([]byte("A1=one\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultStage, f.Stage)
}

func TestParse_QuotedValues(t *testing.T) {
	f, err := Parse([]byte("A1=\"with space\"\nA2='single'\nA3=plain\n"))
	require.NoError(t, err)

	assert.Equal(t, []samkit.EnvVar{
		{Name: "A1", Value: "with space"},
		{Name: "A2", Value: "single"},
		{Name: "A3", Value: "plain"},
	}, f.Vars)
}

func TestParse_LastValueWinsKeepsOrder(t *testing.T) {
	f, err := Parse([]byte("A1=first\nA2=two\nA1=second\n"))
	require.NoError(t, err)

	assert.Equal(t, []samkit.EnvVar{
		{Name: "A1", Value: "second"},
		{Name: "A2", Value: "two"},
	}, f.Vars)
}

func TestParse_ValueWithEquals(t *testing.T) {
	f, err := Parse([]byte("CONN=host=db;port=5432\n"))
	require.NoError(t, err)

	v, ok := f.Lookup("CONN")
	require.True(t, ok)
	assert.Equal(t, "host=db;port=5432", v)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "missing equals", data: "JUSTAWORD\n", want: "line 1: missing '='"},
		{name: "empty key", data: "A1=one\n=value\n", want: "line 2: empty key"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultStage, f.Stage)
	assert.Empty(t, f.Vars)
	_, ok := f.Lookup("A1")
	assert.False(t, ok)
}
