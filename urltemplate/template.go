package urltemplate

import (
	"net/url"
	"strings"
)

// Template is a URL containing {name} placeholders. Any
// string converts to a Template; validation happens when it
// is substituted. Two templates are equal when their strings
// are equal.
type Template string

// New returns s as a Template.
func New(s string) Template {
	return Template(s)
}

// String returns the template text exactly as constructed.
func (t Template) String() string {
	return string(t)
}

// Validate checks the scheme and brace syntax without
// substituting anything.
func (t Template) Validate() error {
	if err := probe(string(t)); err != nil {
		return err
	}

	return scan(string(t), func(token) error { return nil })
}

// Placeholders returns the distinct placeholder names in
// order of first appearance.
func (t Template) Placeholders() ([]string, error) {
	if err := probe(string(t)); err != nil {
		return nil, err
	}

	var names []string

	seen := make(map[string]struct{})

	err := scan(string(t), func(tok token) error {
		if !tok.placeholder {
			return nil
		}

		if _, ok := seen[tok.text]; !ok {
			seen[tok.text] = struct{}{}
			names = append(names, tok.text)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}

// SubstituteString validates the template and replaces every
// placeholder with its value from params. Names absent from
// params become the empty string unless WithStrict is given.
//
// Failures are returned as *Error.
func (t Template) SubstituteString(
	params map[string]string,
	opts ...Option,
) (string, error) {
	o := buildOptions(opts)

	if err := probe(string(t)); err != nil {
		return "", err
	}

	var (
		sb      strings.Builder
		missing *Error
	)

	sb.Grow(len(t))

	err := scan(string(t), func(tok token) error {
		if !tok.placeholder {
			sb.WriteString(tok.text)
			return nil
		}

		val, ok := params[tok.text]
		if !ok && o.strict && missing == nil {
			missing = newError(UnknownPlaceholder, tok.offset)
		}

		sb.WriteString(val)

		return nil
	})
	if err != nil {
		return "", err
	}

	if missing != nil {
		return "", missing
	}

	return sb.String(), nil
}

// SubstituteURL behaves like SubstituteString and parses the
// result. A parse failure at that point is reported as an
// *InternalError, never as an *Error.
func (t Template) SubstituteURL(
	params map[string]string,
	opts ...Option,
) (*url.URL, error) {
	s, err := t.SubstituteString(params, opts...)
	if err != nil {
		return nil, err
	}

	return reparse(s)
}
