package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tansive/firebase/pkg/firebase"
)

func TestPayloadBuild(t *testing.T) {
	tests := []struct {
		name    string
		flags   payloadFlags
		want    string
		wantErr string
	}{
		{
			name:  "inline object",
			flags: payloadFlags{data: `{"name":"Oscar"}`},
			want:  `{"name":"Oscar"}`,
		},
		{
			name:  "inline primitive",
			flags: payloadFlags{data: ` true `},
			want:  `true`,
		},
		{
			name:  "set builds an object",
			flags: payloadFlags{sets: []string{"name=Oscar", "age=18", "tags=[\"a\"]", "address.city=Paris"}},
			want:  `{"name":"Oscar","age":18,"tags":["a"],"address":{"city":"Paris"}}`,
		},
		{
			name:  "set on top of data",
			flags: payloadFlags{data: `{"name":"Oscar","age":18}`, sets: []string{"age=19"}},
			want:  `{"name":"Oscar","age":19}`,
		},
		{
			name:  "value with equals sign",
			flags: payloadFlags{sets: []string{"expr=a=b"}},
			want:  `{"expr":"a=b"}`,
		},
		{
			name:  "empty value is an empty string",
			flags: payloadFlags{sets: []string{"name="}},
			want:  `{"name":""}`,
		},
		{
			name:    "nothing given",
			flags:   payloadFlags{},
			wantErr: "one of --data, --file or --set must be specified",
		},
		{
			name:    "invalid data",
			flags:   payloadFlags{data: `{"name":`},
			wantErr: "invalid JSON data",
		},
		{
			name:    "set without equals",
			flags:   payloadFlags{sets: []string{"name"}},
			wantErr: `invalid --set "name", expected path=value`,
		},
		{
			name:    "set without path",
			flags:   payloadFlags{sets: []string{"=x"}},
			wantErr: "expected path=value",
		},
		{
			name:    "missing file",
			flags:   payloadFlags{file: "does-not-exist.json"},
			wantErr: "failed to read file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.build()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestPayloadFromFile(t *testing.T) {
	t.Setenv("FBCLI_TEST_CITY", "Paris")
	file := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"city":"{{ .ENV.FBCLI_TEST_CITY }}"}`+"\n"), 0o600))

	got, err := (&payloadFlags{file: file}).build()
	require.NoError(t, err)
	assert.JSONEq(t, `{"city":"Paris"}`, string(got))

	require.NoError(t, os.WriteFile(file, []byte(`{"city":"{{ .ENV.FBCLI_TEST_UNSET_VAR }}"}`), 0o600))
	_, err = (&payloadFlags{file: file}).build()
	assert.ErrorContains(t, err, "missing environment variable: FBCLI_TEST_UNSET_VAR")
}

func TestParseQuery(t *testing.T) {
	q, err := parseQuery(nil)
	require.NoError(t, err)
	assert.Nil(t, q)

	q, err = parseQuery([]string{`orderBy="$key"`, "limitToFirst=2", "equalTo=a=b"})
	require.NoError(t, err)
	assert.Equal(t, firebase.Query{"orderBy": `"$key"`, "limitToFirst": "2", "equalTo": "a=b"}, q)

	_, err = parseQuery([]string{"shallow"})
	assert.ErrorContains(t, err, `invalid query option "shallow"`)
	_, err = parseQuery([]string{"=1"})
	assert.Error(t, err)
}
