package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonitor "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/tansive/firebase/pkg/firebase"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// payloadFlags are the ways a write command receives its data.
type payloadFlags struct {
	data string
	file string
	sets []string
}

func (p *payloadFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.data, "data", "d", "", "JSON data string")
	cmd.Flags().StringVarP(&p.file, "file", "f", "", "File containing JSON data, {{ .ENV.VAR }} placeholders are expanded")
	cmd.Flags().StringArrayVar(&p.sets, "set", nil, "Set a field, path=value. Values that are valid JSON are inserted as is")
	cmd.MarkFlagsMutuallyExclusive("file", "data")
}

// build returns the JSON document described by the flags. --set pairs are
// applied on top of -d or -f, or on an empty object.
func (p *payloadFlags) build() (jsonitor.RawMessage, error) {
	var doc []byte
	switch {
	case p.file != "":
		raw, err := os.ReadFile(filepath.Clean(p.file))
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		doc, err = PreprocessPayload(raw)
		if err != nil {
			return nil, err
		}
	case p.data != "":
		doc = []byte(p.data)
	case len(p.sets) > 0:
		doc = []byte("{}")
	default:
		return nil, errors.New("one of --data, --file or --set must be specified")
	}

	doc = []byte(strings.TrimSpace(string(doc)))
	if !gjson.ValidBytes(doc) {
		return nil, errors.New("invalid JSON data")
	}

	for _, pair := range p.sets {
		var err error
		doc, err = applySet(doc, pair)
		if err != nil {
			return nil, err
		}
	}
	return jsonitor.RawMessage(doc), nil
}

// applySet sets path=value in doc using sjson path syntax.
func applySet(doc []byte, pair string) ([]byte, error) {
	path, value, ok := strings.Cut(pair, "=")
	if !ok || path == "" {
		return nil, fmt.Errorf("invalid --set %q, expected path=value", pair)
	}
	var err error
	if gjson.Valid(value) {
		doc, err = sjson.SetRawBytes(doc, path, []byte(value))
	} else {
		doc, err = sjson.SetBytes(doc, path, value)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to set %s: %w", path, err)
	}
	return doc, nil
}

// parseQuery turns repeated -q key=value flags into query options.
func parseQuery(pairs []string) (firebase.Query, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	q := firebase.Query{}
	for _, pair := range pairs {
		k, val, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid query option %q, expected key=value", pair)
		}
		q[k] = val
	}
	return q, nil
}
