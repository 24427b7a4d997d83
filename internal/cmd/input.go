package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// readDocument decodes a YAML or JSON document from path, or from in when
// path is "-". Field names follow the wire format.
func readDocument(in io.Reader, path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return usageError{fmt.Errorf("--file is required")}
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
