package cli

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/joho/godotenv"
)

type TemplateContext struct {
	ENV map[string]string
}

var missingKeyRegex = regexp.MustCompile(`map has no entry for key "(.*?)"`)

// PreprocessPayload replaces {{ .ENV.VAR }} placeholders with values from
// the environment or a .env file in the working directory. Variables set in
// the environment win over the file.
func PreprocessPayload(inputRaw []byte) ([]byte, error) {
	_ = godotenv.Load() // no error if .env doesn't exist

	envMap := map[string]string{}
	for _, e := range os.Environ() {
		if k, val, ok := strings.Cut(e, "="); ok {
			envMap[k] = val
		}
	}

	tmpl, err := template.New("payload").Option("missingkey=error").Parse(string(inputRaw))
	if err != nil {
		return nil, fmt.Errorf("template error: %w", err)
	}

	var output bytes.Buffer
	if err := tmpl.Execute(&output, TemplateContext{ENV: envMap}); err != nil {
		if matches := missingKeyRegex.FindStringSubmatch(err.Error()); len(matches) == 2 {
			return nil, fmt.Errorf("missing environment variable: %s (set it in your shell or .env file)", matches[1])
		}
		return nil, fmt.Errorf("template error: %w", err)
	}
	return output.Bytes(), nil
}
