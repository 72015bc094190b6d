package urltemplate

// token is either a literal run or a closed placeholder.
// Offset is the byte position of the literal start or of the
// placeholder's opening brace.
type token struct {
	text        string
	offset      int
	placeholder bool
}

// scan walks raw once, left to right, and hands each literal
// run and each closed placeholder to fn in order. Brace
// nesting is flat: a second '{' before '}' and a '}' with no
// opener are rejected at their offset, and an unterminated
// '{' is rejected at the last byte of raw.
//
// Braces are ASCII, so stepping by byte is equivalent to
// stepping by character and leaves multi-byte runes intact.
func scan(raw string, fn func(tok token) error) error {
	inside := false
	start := 0 // start of the pending literal or name

	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			if inside {
				return newError(InvalidPattern, i)
			}

			if i > start {
				if err := fn(token{
					text:   raw[start:i],
					offset: start,
				}); err != nil {
					return err
				}
			}

			inside = true
			start = i + 1
		case '}':
			if !inside {
				return newError(InvalidPattern, i)
			}

			if err := fn(token{
				text:        raw[start:i],
				offset:      start - 1,
				placeholder: true,
			}); err != nil {
				return err
			}

			inside = false
			start = i + 1
		}
	}

	if inside {
		return newError(InvalidPattern, len(raw)-1)
	}

	if start < len(raw) {
		return fn(token{text: raw[start:], offset: start})
	}

	return nil
}
