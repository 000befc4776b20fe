// Package pipeline drives a translation run: it reads the records of one
// input file, formats each description, applies the malformed-record policy,
// and writes the sibling -FILTERED file. An optional journal records every
// record outcome.
package pipeline
