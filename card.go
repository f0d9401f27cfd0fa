package corpora

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Card is the YAML front matter of a dataset card, the README that ships
// next to exported data.
type Card struct {
	PrettyName     string   `yaml:"pretty_name,omitempty"`
	Languages      []string `yaml:"language,omitempty"`
	License        string   `yaml:"license,omitempty"`
	TaskCategories []string `yaml:"task_categories,omitempty"`
	SizeCategories []string `yaml:"size_categories,omitempty"`
}

// CardFor builds a card from dataset info. totalRows sets the size
// category; pass 0 when the row count is unknown.
func CardFor(info DatasetInfo, totalRows int) Card {
	c := Card{
		PrettyName: info.Name,
		Languages:  append([]string(nil), info.Languages...),
		License:    info.License,
	}
	if info.Config != "" {
		c.PrettyName = info.Name + " " + info.Config
	}
	if info.Features["source"] != "" && info.Features["target"] != "" {
		c.TaskCategories = []string{"translation"}
	}
	if totalRows > 0 {
		c.SizeCategories = []string{sizeCategory(totalRows)}
	}
	return c
}

// sizeCategory buckets a row count the way dataset cards do.
func sizeCategory(n int) string {
	switch {
	case n < 1_000:
		return "n<1K"
	case n < 10_000:
		return "1K<n<10K"
	case n < 100_000:
		return "10K<n<100K"
	case n < 1_000_000:
		return "100K<n<1M"
	case n < 10_000_000:
		return "1M<n<10M"
	default:
		return "n>10M"
	}
}

// RenderCard serializes a card and its markdown body into README form:
// YAML front matter between "---" fences, then the body.
func RenderCard(c Card, body string) ([]byte, error) {
	front, err := yaml.Marshal(c)
	if err != nil {
		return nil, WrapError(err, "rendering dataset card")
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(front)
	buf.WriteString("---\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}

// ParseCard splits README content into its card and markdown body. Content
// without front matter fences is rejected.
func ParseCard(data []byte) (Card, string, error) {
	var c Card

	content := strings.TrimLeft(string(data), "\n")
	rest, found := strings.CutPrefix(content, "---\n")
	if !found {
		return c, "", NewValidationError("card", "missing front matter")
	}

	front, body, found := strings.Cut(rest, "\n---\n")
	if !found {
		// A fence at the very end has no trailing newline to cut on.
		if trimmed, ok := strings.CutSuffix(rest, "\n---"); ok {
			front, body = trimmed, ""
		} else {
			return c, "", NewValidationError("card", "unterminated front matter")
		}
	}

	if err := yaml.Unmarshal([]byte(front), &c); err != nil {
		return c, "", fmt.Errorf("corpora: parsing dataset card: %w", err)
	}
	return c, strings.TrimPrefix(body, "\n"), nil
}

// CardBody renders the default markdown body for a dataset.
func CardBody(info DatasetInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Dataset Card for %s\n", info.Name)
	if info.Description != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(info.Description))
		b.WriteString("\n")
	}
	if info.Homepage != "" {
		fmt.Fprintf(&b, "\n- Homepage: %s\n", info.Homepage)
	}
	if info.Citation != "" {
		fmt.Fprintf(&b, "\n## Citation\n\n```\n%s\n```\n", strings.TrimSpace(info.Citation))
	}
	return b.String()
}
