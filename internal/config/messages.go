package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Messages holds the user-visible strings shown by the API, the WebSocket
// session and the terminal client. Templates may reference {{.Query}}.
type Messages struct {
	EmptyState   string `yaml:"empty_state"`
	Loading      string `yaml:"loading"`
	SearchFailed string `yaml:"search_failed"`
	LookupFailed string `yaml:"lookup_failed"`
	NoResults    string `yaml:"no_results"`
	NotFound     string `yaml:"not_found"`
	EmptyQuery   string `yaml:"empty_query"`
	InvalidID    string `yaml:"invalid_id"`
}

// DefaultMessages returns the built-in strings.
func DefaultMessages() *Messages {
	return &Messages{
		EmptyState:   "No meals yet. Try Searching",
		Loading:      "Loading meals...",
		SearchFailed: "Network response Not Ok",
		LookupFailed: "Could not load meal details",
		NoResults:    `No meals found for "{{.Query}}"`,
		NotFound:     "No meal found.",
		EmptyQuery:   "Query parameter 's' is required",
		InvalidID:    "Invalid meal ID",
	}
}

// LoadMessages reads a YAML messages file. Keys missing from the file keep
// their default value. A missing file yields the defaults.
func LoadMessages(path string) (*Messages, error) {
	msgs := DefaultMessages()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return msgs, nil
		}
		return nil, fmt.Errorf("failed to read messages file: %w", err)
	}

	if err := yaml.Unmarshal(data, msgs); err != nil {
		return nil, fmt.Errorf("failed to parse messages YAML: %w", err)
	}

	return msgs, nil
}

// RenderMessage executes Go template interpolation on a message string.
func RenderMessage(tmpl string, data map[string]interface{}) (string, error) {
	t, err := template.New("message").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse message template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render message template: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}
