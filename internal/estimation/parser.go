package estimation

import (
	"regexp"
	"strconv"
	"strings"
)

// Field is one extracted macro value. Present is false when the label was not
// found in the text, in which case Value is 0.
type Field struct {
	Value   int  `json:"value"`
	Present bool `json:"present"`
}

// Result is the parsed form of an estimation reply
type Result struct {
	Calories    Field  `json:"calories"`
	Protein     Field  `json:"protein"`
	Carbs       Field  `json:"carbs"`
	Fats        Field  `json:"fats"`
	Description string `json:"description"`
	Analysis    string `json:"analysis"`
}

// Complete reports whether all four macros were found
func (r *Result) Complete() bool {
	return r.Calories.Present && r.Protein.Present && r.Carbs.Present && r.Fats.Present
}

// Both "Calories: **450 kcal**" and the older "Calories: 450" are accepted.
var (
	caloriesPattern = regexp.MustCompile(`Calories:\s*\**\s*(\d+)`)
	proteinPattern  = regexp.MustCompile(`Protein:\s*\**\s*(\d+(?:\.\d+)?)\s*g`)
	carbsPattern    = regexp.MustCompile(`Carbs:\s*\**\s*(\d+)(?:\.\d+)?\s*g`)
	fatsPattern     = regexp.MustCompile(`Fats:\s*\**\s*(\d+)(?:\.\d+)?\s*g`)
)

// StripFence removes a leading ```lang line and a trailing ``` marker
func StripFence(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSuffix(s, "\n")
		s = strings.TrimSuffix(s, "\r")
	}
	return s
}

// Parse extracts the four macros from raw reply text. Fields whose label is
// missing resolve to zero rather than an error.
func Parse(description, raw string) *Result {
	content := StripFence(raw)
	return &Result{
		Calories:    extract(caloriesPattern, content),
		Protein:     extract(proteinPattern, content),
		Carbs:       extract(carbsPattern, content),
		Fats:        extract(fatsPattern, content),
		Description: description,
		Analysis:    content,
	}
}

func extract(re *regexp.Regexp, content string) Field {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return Field{}
	}
	// fractional values are truncated
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Field{}
	}
	return Field{Value: int(v), Present: true}
}
