package schedule

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"tableflip.dev/routine/pkg/fetch"
)

//go:embed schema.json
var schemaJSON string

//go:embed default.yaml
var defaultSchedule []byte

const maxDocumentSize = 1 << 20

var documentSchema = compileSchema()

func compileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schedule.json", strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("schedule: add schema: %v", err))
	}
	schema, err := compiler.Compile("schedule.json")
	if err != nil {
		panic(fmt.Sprintf("schedule: compile schema: %v", err))
	}
	return schema
}

// Default returns the schedule bundled with the binary.
func Default() *Schedule {
	s, err := Parse(defaultSchedule)
	if err != nil {
		panic(fmt.Sprintf("schedule: bundled default is invalid: %v", err))
	}
	return s
}

// Load reads the schedule document from source. An empty source yields the
// bundled default, an http(s) URL is fetched with client (a default timeout client when nil), anything else is
// read as a file path.
func Load(ctx context.Context, source string, client *http.Client) (*Schedule, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return Parse(defaultSchedule)
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = fetch.Bytes(ctx, client, source, maxDocumentSize)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("schedule: read %s: %w", source, err)
	}
	return Parse(data)
}

// Parse decodes a schedule document. JSON and YAML are both accepted; the
// order of the top-level keys is the display order of the sections.
func Parse(data []byte) (*Schedule, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("schedule: parse: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, errors.New("schedule: empty document")
	}
	doc := root.Content[0]

	if err := validate(doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.MappingNode {
		return nil, errors.New("schedule: document must be a mapping")
	}

	sections := make([]Section, 0, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		var sec Section
		if err := doc.Content[i+1].Decode(&sec); err != nil {
			return nil, fmt.Errorf("schedule: section %q: %w", doc.Content[i].Value, err)
		}
		sec.Key = doc.Content[i].Value
		sections = append(sections, sec)
	}
	return New(sections...)
}

// validate checks doc against the embedded schema. The node is round-tripped
// through encoding/json so the validator only sees JSON value types.
func validate(doc *yaml.Node) error {
	var raw interface{}
	if err := doc.Decode(&raw); err != nil {
		return fmt.Errorf("schedule: decode: %w", err)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("schedule: normalise: %w", err)
	}
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("schedule: normalise: %w", err)
	}
	if err := documentSchema.Validate(v); err != nil {
		return fmt.Errorf("schedule: invalid document: %w", err)
	}
	return nil
}
