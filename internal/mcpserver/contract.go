package mcpserver

// EntryFormatContract describes the canonical entry format that LLM
// consumers should follow when creating journal entries.
const EntryFormatContract = `# Laguz Entry Format Contract

Every journal entry created through Laguz tools MUST follow this structure.

## Fields

- **title** (string, optional) – short human-readable headline.
- **content** (string, REQUIRED) – the entry body in plain text or Markdown.
  This is the only field the annotation pipeline reads: summary, sentiment,
  and keywords are all derived from it on save.
- **date** (string, optional) – ISO-8601 date (` + "`" + `YYYY-MM-DD` + "`" + `). When omitted
  the creation timestamp's date is used.
- **mood** (string, optional) – the author's self-reported mood, free text
  (e.g. ` + "`" + `happy` + "`" + `, ` + "`" + `tired` + "`" + `, ` + "`" + `anxious` + "`" + `).
- **tags** (list of strings, optional) – lowercase, kebab-case labels used
  for filtering and topic statistics.
- **is_private** (bool, optional) – defaults to true. Private entries are
  still stored and analyzed; the flag only marks sharing intent.

## Rules

1. **Never fill in derived fields.** Summary, sentiment, and keywords are
   computed automatically; supplying them has no effect.
2. **Dates** use ISO-8601 (` + "`" + `2025-01-20` + "`" + `). Do not localize.
3. **Tags** are lowercase, kebab-case (e.g. ` + "`" + `work` + "`" + `, ` + "`" + `family-time` + "`" + `).
4. **Content length matters.** Entries under 20 words are stored as-is
   without summarization; longer entries get a summary of at most 100 words.
5. **Encoding** is UTF-8.

## Example

` + "```" + `json
{
  "title": "Morning reflection",
  "content": "Slept badly but the morning run cleared my head...",
  "date": "2025-01-20",
  "mood": "tired",
  "tags": ["health", "running"]
}
` + "```" + `
`
