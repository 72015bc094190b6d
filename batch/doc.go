// Package batch substitutes parameters into many URL templates read one
// per line. The Engine type holds the shared parameters and options; Run
// processes a stream and Expand wires it to files or stdin/stdout. Output
// is either plain resolved URLs or one JSON record per input line.
package batch
