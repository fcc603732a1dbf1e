package mcpserver

// EventFormatContract describes the event fields LLM consumers must supply
// when creating or updating events.
const EventFormatContract = `# Dagaz Event Format Contract

Every event stored in Dagaz MUST satisfy these rules. Violations are rejected
with a per-field error and nothing is stored.

## Fields

| Field       | Required | Format                                                   |
|-------------|----------|----------------------------------------------------------|
| title       | yes      | Non-blank text, at most 200 characters. Surrounding whitespace is trimmed. |
| start       | yes      | RFC 3339 timestamp, e.g. ` + "`" + `2024-03-10T09:00:00Z` + "`" + ` |
| end         | yes      | RFC 3339 timestamp, not before start                     |
| all_day     | no       | Boolean. All-day events render in their own row.          |
| location    | no       | Free text                                                |
| description | no       | Free text                                                |
| category    | no       | One of primary, secondary, success, warning, danger, info. Defaults to primary. |
| attendees   | no       | Comma-separated names or e-mail addresses                 |

## Rules

1. **Updates replace the whole record.** Any optional field left out of
   ` + "`" + `update_event` + "`" + ` is cleared. Read the event first with ` + "`" + `get_event` + "`" + `.
2. **Identifiers are assigned by Dagaz** and never change.
3. **Zero-length events** (start equal to end) are allowed; they never overlap
   other events.
4. **All-day events** should start at midnight and end at or before the
   following midnight of their last day.
5. **Recurrence** is stored with the event but not expanded into occurrences.
   It can only be set through the HTTP API or an imported iCalendar feed.

## Importing

` + "`" + `import_ics` + "`" + ` reads an iCalendar feed from an http(s) URL or a
` + "`" + `data:text/calendar;base64,...` + "`" + ` URI. VEVENTs without SUMMARY or DTSTART
are skipped. CATEGORIES map onto the category above when they match.

## Example

` + "```" + `json
{
  "title": "Team Meeting",
  "start": "2024-03-10T09:00:00Z",
  "end": "2024-03-10T10:30:00Z",
  "location": "Conference Room A",
  "category": "primary",
  "attendees": "alice@example.com, bob@example.com"
}
` + "```" + `
`
