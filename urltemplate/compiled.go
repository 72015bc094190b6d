package urltemplate

import (
	"fmt"
	"io"
	"net/url"

	"github.com/valyala/fasttemplate"
)

// Compiled is a Template validated once and pre-split into
// literal and placeholder segments. It is read-only and safe
// for concurrent use.
type Compiled struct {
	src   Template
	ft    *fasttemplate.Template
	names []placeholder
	opts  options
}

type placeholder struct {
	name   string
	offset int
}

// Compile validates t and prepares it for repeated
// substitution. The options apply to every execution.
func (t Template) Compile(opts ...Option) (*Compiled, error) {
	const errCtx = "compiling template"

	if err := probe(string(t)); err != nil {
		return nil, err
	}

	var names []placeholder

	err := scan(string(t), func(tok token) error {
		if tok.placeholder {
			names = append(names, placeholder{
				name:   tok.text,
				offset: tok.offset,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Brace syntax is flat and balanced at this point, so
	// fasttemplate splits on exactly the same boundaries.
	ft, err := fasttemplate.NewTemplate(string(t), "{", "}")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return &Compiled{
		src:   t,
		ft:    ft,
		names: names,
		opts:  buildOptions(opts),
	}, nil
}

// Template returns the source template.
func (c *Compiled) Template() Template {
	return c.src
}

// Execute substitutes params into the compiled template. The
// result is identical to Template.SubstituteString with the
// same options.
func (c *Compiled) Execute(params map[string]string) (string, error) {
	const errCtx = "executing template"

	if c.opts.strict {
		for _, ph := range c.names {
			if _, ok := params[ph.name]; !ok {
				return "", newError(UnknownPlaceholder, ph.offset)
			}
		}
	}

	s, err := c.ft.ExecuteFuncStringWithErr(
		func(w io.Writer, tag string) (int, error) {
			return io.WriteString(w, params[tag])
		},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return s, nil
}

// URL executes the template and parses the result.
func (c *Compiled) URL(params map[string]string) (*url.URL, error) {
	s, err := c.Execute(params)
	if err != nil {
		return nil, err
	}

	return reparse(s)
}
