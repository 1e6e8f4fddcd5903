package gemini

import (
	"regexp"
	"strings"

	"github.com/flashchat/flashchat-go/internal/model"
)

// Code-generation responses follow a three-section grammar in fixed order:
//
//	### Explanation
//	<prose>
//	### Code
//	```<language>
//	<code>
//	```
//	### Output
//	<expected output>
//
// Models do not always comply, so parsing degrades gracefully: when the
// labels are absent, the whole text becomes the explanation and the first
// fenced block (if any) becomes the code.
var (
	explanationRe = regexp.MustCompile(`(?s)### Explanation\s*\n(.+?)\n###`)
	codeRe        = regexp.MustCompile("(?s)### Code\\s*\\n```[\\w+#.-]*\\n(.+?)\n```")
	outputRe      = regexp.MustCompile(`(?s)### Output\s*\n(.+)`)
	fencedRe      = regexp.MustCompile("(?s)```[\\w+#.-]*\\n(.+?)\n```")
)

// ParseGeneratedCode extracts the explanation, code, and expected output
// sections from a code-generation response.
func ParseGeneratedCode(text string) model.GeneratedCode {
	var out model.GeneratedCode

	if m := explanationRe.FindStringSubmatch(text); m != nil {
		out.Explanation = strings.TrimSpace(m[1])
	}
	if m := codeRe.FindStringSubmatch(text); m != nil {
		out.Code = strings.TrimSpace(m[1])
	}
	if m := outputRe.FindStringSubmatch(text); m != nil {
		out.Output = strings.TrimSpace(m[1])
	}

	// Fallback for unlabeled responses.
	if out.Code == "" && text != "" {
		out.Explanation = text
		if m := fencedRe.FindStringSubmatch(text); m != nil {
			out.Code = strings.TrimSpace(m[1])
		}
	}

	return out
}
