// File: pkg/combine/template.go
package combine

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// ErrMissingTemplate reports that the template file does not exist. The
// merge step cannot proceed without it and the whole run fails.
var ErrMissingTemplate = errors.New("template file not found")

// MergeTemplate reads the template, replaces every occurrence of the
// placeholder with payload, and writes the result to rulesPath. The
// template itself is never modified.
func MergeTemplate(templatePath, rulesPath, placeholder, payload string, logger *zap.Logger) error {
	templateContent, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingTemplate, templatePath)
		}
		return fmt.Errorf("failed to read template %s: %w", templatePath, err)
	}

	merged := strings.ReplaceAll(string(templateContent), placeholder, payload)

	if err := writeToFile(rulesPath, []byte(merged), 0644, logger); err != nil {
		return fmt.Errorf("failed to write rules file %s: %w", rulesPath, err)
	}
	return nil
}
