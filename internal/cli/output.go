package cli

import (
	"fmt"
	"io"

	"github.com/anand-gl/jsoncanonicalizer"
	jsonitor "github.com/json-iterator/go"
	"github.com/tansive/firebase/pkg/firebase"
	"sigs.k8s.io/yaml"
)

var json = jsonitor.ConfigCompatibleWithStandardLibrary

// printJSON prints data as indented JSON
func printJSON(w io.Writer, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to format JSON output: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}

func printf(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, format, a...)
}

// checkResponse turns a non-2xx response into an error carrying the
// server message and returns the parsed body otherwise.
func checkResponse(resp *firebase.Response) (firebase.Value, error) {
	if err := resp.Err(); err != nil {
		return firebase.Value{}, err
	}
	return resp.Body()
}

// printValue prints a database value as YAML, or wrapped in a result
// document with --json. An empty body prints nothing.
func (opts *rootOptions) printValue(w io.Writer, v firebase.Value) error {
	if opts.jsonOutput {
		return printJSON(w, map[string]any{
			"result": 1,
			"value":  v,
		})
	}
	if v.IsNoContent() {
		return nil
	}
	yamlBytes, err := yaml.JSONToYAML(v.Raw())
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %w", err)
	}
	fmt.Fprint(w, string(yamlBytes))
	return nil
}

// printCanonical prints v as canonical JSON with sorted keys and
// normalized numbers. An empty body prints nothing.
func printCanonical(w io.Writer, v firebase.Value) error {
	if v.IsNoContent() {
		return nil
	}
	canonical, err := jsoncanonicalizer.Transform(v.Raw())
	if err != nil {
		return fmt.Errorf("failed to canonicalize JSON: %w", err)
	}
	fmt.Fprintln(w, string(canonical))
	return nil
}
