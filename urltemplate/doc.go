// Package urltemplate validates URLs carrying single-brace {name}
// placeholders and substitutes them from a parameter map. A Template is
// checked for an http or https scheme before its placeholders are
// scanned; malformed brace syntax is reported as an *Error carrying the
// byte offset of the offending character.
//
// Missing parameters resolve to the empty string unless WithStrict is
// given. Compile validates a template once and returns a Compiled form
// backed by valyala/fasttemplate for repeated substitution.
package urltemplate
