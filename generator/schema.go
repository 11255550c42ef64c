package generator

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const outlineSchemaName = "guide_outline"

// outlineSchema is sent to the model as the strict response format and
// used locally to validate what comes back.
const outlineSchema = `{
  "type": "object",
  "properties": {
    "title": {"type": "string", "description": "Title of the guide"},
    "introduction": {"type": "string", "description": "Introduction to the topic"},
    "target_audience": {"type": "string", "description": "Description of the target audience"},
    "sections": {
      "type": "array",
      "description": "List of sections in the guide",
      "items": {
        "type": "object",
        "properties": {
          "title": {"type": "string", "description": "Title of the section"},
          "description": {"type": "string", "description": "Brief description of what the section should cover"}
        },
        "required": ["title", "description"],
        "additionalProperties": false
      }
    },
    "conclusion": {"type": "string", "description": "Conclusion or summary of the guide"}
  },
  "required": ["title", "introduction", "target_audience", "sections", "conclusion"],
  "additionalProperties": false
}`

var (
	compiledOutlineOnce sync.Once
	compiledOutline     *jsonschema.Schema
	compiledOutlineErr  error
)

func outlineValidator() (*jsonschema.Schema, error) {
	compiledOutlineOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("guide_outline.json", strings.NewReader(outlineSchema)); err != nil {
			compiledOutlineErr = fmt.Errorf("loading outline schema: %w", err)
			return
		}
		compiledOutline, compiledOutlineErr = compiler.Compile("guide_outline.json")
	})
	return compiledOutline, compiledOutlineErr
}

// OutlineSchema returns the JSON Schema document for GuideOutline.
func OutlineSchema() json.RawMessage {
	return json.RawMessage(outlineSchema)
}

// completionJSON returns the trimmed completion when it is a JSON document.
func completionJSON(content string) (json.RawMessage, bool) {
	content = strings.TrimSpace(content)
	if content == "" || !json.Valid([]byte(content)) {
		return nil, false
	}
	return json.RawMessage(content), true
}
