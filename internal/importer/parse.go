package importer

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/laguz/internal/journal"
)

var tagRe = regexp.MustCompile(`(?:^|\s)#([A-Za-z][A-Za-z0-9_/-]*)`)

// parseDraft turns a dropped Markdown file into an entry draft. YAML
// frontmatter (between leading --- delimiters) may set title, date, mood,
// tags, and private; inline #tags in the body are collected too. The body
// becomes the entry content.
func parseDraft(data []byte) journal.Draft {
	fm, body := splitFrontmatter(data)

	d := journal.Draft{Content: body}
	if fm != nil {
		d.Title = fmString(fm, "title")
		d.Date = fmString(fm, "date")
		d.Mood = fmString(fm, "mood")
		if v, ok := fm["private"].(bool); ok {
			d.IsPrivate = &v
		}
	}
	if d.Title == "" {
		d.Title = deriveTitle(body)
	}
	d.Tags = extractTags(body, fm)
	return d
}

// splitFrontmatter separates YAML frontmatter from the Markdown body. If no
// frontmatter is found, or the YAML is invalid, the entire content is body.
func splitFrontmatter(data []byte) (map[string]interface{}, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data)
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		return nil, string(data)
	}
	return fm, body
}

func fmString(fm map[string]interface{}, key string) string {
	if v, ok := fm[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// extractTags collects tags from the frontmatter "tags" field and inline
// #tags from the body, deduplicated in first-seen order.
func extractTags(body string, fm map[string]interface{}) []string {
	seen := make(map[string]struct{})
	var out []string

	if fm != nil {
		if raw, ok := fm["tags"]; ok {
			switch v := raw.(type) {
			case []interface{}:
				for _, item := range v {
					if s, ok := item.(string); ok {
						s = strings.TrimSpace(s)
						if s != "" {
							if _, dup := seen[s]; !dup {
								seen[s] = struct{}{}
								out = append(out, s)
							}
						}
					}
				}
			case string:
				for _, s := range strings.Split(v, ",") {
					s = strings.TrimSpace(s)
					if s != "" {
						if _, dup := seen[s]; !dup {
							seen[s] = struct{}{}
							out = append(out, s)
						}
					}
				}
			}
		}
	}

	matches := tagRe.FindAllStringSubmatch(body, -1)
	for _, m := range matches {
		t := m[1]
		if _, dup := seen[t]; !dup {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// deriveTitle returns the first H1 heading, otherwise empty string.
func deriveTitle(body string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
