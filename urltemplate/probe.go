package urltemplate

import (
	"net/url"
	"strings"
)

// braceMask hides placeholder delimiters from net/url. '!'
// is legal in a host but not in a scheme, so masked braces
// neither fail host validation nor forge a scheme.
var braceMask = strings.NewReplacer("{", "!", "}", "!")

// probe checks that raw, braces included, is an absolute
// http or https URL with a host.
func probe(raw string) *Error {
	parsed, err := url.Parse(braceMask.Replace(raw))
	if err != nil || parsed.Scheme == "" {
		return newError(NotAURL, 0)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return newError(InvalidScheme, 0)
	}

	if parsed.Host == "" {
		return newError(NotAURL, 0)
	}

	return nil
}

// reparse parses a fully substituted string. A failure here
// breaks the contract established by probe.
func reparse(substituted string) (*url.URL, error) {
	parsed, err := url.Parse(substituted)
	if err != nil {
		return nil, &InternalError{
			Substituted: substituted,
			Err:         err,
		}
	}

	return parsed, nil
}
