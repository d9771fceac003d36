package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessPayload(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		envVars  map[string]string
		expected string
		wantErr  string
	}{
		{
			name:     "simple environment variable substitution",
			input:    `{"key": "{{ .ENV.FBCLI_API_KEY }}"}`,
			envVars:  map[string]string{"FBCLI_API_KEY": "secret123"},
			expected: `{"key": "secret123"}`,
		},
		{
			name:     "multiple environment variables",
			input:    `{"host": "{{ .ENV.FBCLI_HOST }}", "port": {{ .ENV.FBCLI_PORT }}}`,
			envVars:  map[string]string{"FBCLI_HOST": "localhost", "FBCLI_PORT": "8080"},
			expected: `{"host": "localhost", "port": 8080}`,
		},
		{
			name:     "empty environment variable",
			input:    `{"empty": "{{ .ENV.FBCLI_EMPTY }}"}`,
			envVars:  map[string]string{"FBCLI_EMPTY": ""},
			expected: `{"empty": ""}`,
		},
		{
			name:     "value with equals sign",
			input:    `{"config": "{{ .ENV.FBCLI_CONFIG }}"}`,
			envVars:  map[string]string{"FBCLI_CONFIG": "key=value"},
			expected: `{"config": "key=value"}`,
		},
		{
			name:     "no template variables",
			input:    `{"name": "Oscar"}`,
			expected: `{"name": "Oscar"}`,
		},
		{
			name:    "missing environment variable",
			input:   `{"missing": "{{ .ENV.FBCLI_MISSING_VAR }}"}`,
			wantErr: "missing environment variable: FBCLI_MISSING_VAR",
		},
		{
			name:    "invalid template syntax",
			input:   `{"invalid": "{{ .ENV.VAR }"}`,
			wantErr: "template error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			result, err := PreprocessPayload([]byte(tt.input))
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestPreprocessPayloadWithEnvFile(t *testing.T) {
	originalWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(originalWd) })

	envContent := "FBCLI_FILE_KEY=from_env_file\nFBCLI_FILE_HOST=localhost\n"
	require.NoError(t, os.WriteFile(".env", []byte(envContent), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("FBCLI_FILE_KEY")
		os.Unsetenv("FBCLI_FILE_HOST")
	})

	// environment values win over the file
	t.Setenv("FBCLI_FILE_KEY", "from_environment")

	result, err := PreprocessPayload([]byte(`{"key":"{{ .ENV.FBCLI_FILE_KEY }}","host":"{{ .ENV.FBCLI_FILE_HOST }}"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"key":"from_environment","host":"localhost"}`, string(result))
}
