package domain

const ContentTypeText = "text"

// Content is one block of a tool result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is the envelope returned for every tool invocation, success or failure.
type ToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

func NewTextResult(text string) ToolResult {
	return ToolResult{Content: []Content{{Type: ContentTypeText, Text: text}}}
}

// NewErrorResult renders err as "Error: {message}".
func NewErrorResult(err error) ToolResult {
	return ToolResult{
		Content: []Content{{Type: ContentTypeText, Text: "Error: " + err.Error()}},
		IsError: true,
	}
}

// Text returns the concatenated text of all text blocks.
func (r ToolResult) Text() string {
	var text string
	for _, c := range r.Content {
		if c.Type == ContentTypeText {
			text += c.Text
		}
	}
	return text
}
