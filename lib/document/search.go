package document

import (
	"fmt"
	"regexp"
	"strings"
)

// Result holds the captures of one template match. Anonymous `{}`
// captures land in Fixed in order, `{name}` captures in Named.
type Result struct {
	Fixed []string
	Named map[string]string
}

var captureName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// compileTemplate turns a parse-style template like
// "Version: {} ({codename})" into a regular expression. Captures are
// non-greedy except for a capture in final position, which runs to the
// end of the input.
func compileTemplate(template string) (*regexp.Regexp, error) {
	var pattern strings.Builder
	pattern.WriteString(`(?s)`)

	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			pattern.WriteString(regexp.QuoteMeta(rest))
			break
		}
		close := strings.IndexByte(rest[open:], '}')
		if close < 0 {
			return nil, fmt.Errorf("unbalanced brace in template %q", template)
		}
		close += open

		pattern.WriteString(regexp.QuoteMeta(rest[:open]))

		name := rest[open+1 : close]
		last := close == len(rest)-1
		quantifier := `.+?`
		if last {
			quantifier = `.+`
		}
		switch {
		case name == "":
			pattern.WriteString(`(` + quantifier + `)`)
		case captureName.MatchString(name):
			pattern.WriteString(`(?P<` + name + `>` + quantifier + `)`)
		default:
			return nil, fmt.Errorf("invalid capture name %q in template %q", name, template)
		}

		rest = rest[close+1:]
	}

	return regexp.Compile(pattern.String())
}

func resultFromMatch(re *regexp.Regexp, match []string) Result {
	result := Result{Named: map[string]string{}}
	for i, name := range re.SubexpNames() {
		if i == 0 {
			continue
		}
		if name == "" {
			result.Fixed = append(result.Fixed, match[i])
		} else {
			result.Named[name] = match[i]
		}
	}
	return result
}

// Search matches a parse template against the markup and returns the
// first match, or nil when the template matches nothing.
func (p *parser) Search(template string) (*Result, error) {
	re, err := compileTemplate(template)
	if err != nil {
		return nil, err
	}
	match := re.FindStringSubmatch(p.HTML())
	if match == nil {
		return nil, nil
	}
	result := resultFromMatch(re, match)
	return &result, nil
}

// SearchAll returns every non-overlapping match of a parse template.
func (p *parser) SearchAll(template string) ([]Result, error) {
	re, err := compileTemplate(template)
	if err != nil {
		return nil, err
	}
	matches := re.FindAllStringSubmatch(p.HTML(), -1)
	results := make([]Result, 0, len(matches))
	for _, match := range matches {
		results = append(results, resultFromMatch(re, match))
	}
	return results, nil
}
