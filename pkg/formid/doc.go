// Package formid decodes and validates the two encodings of a record
// reference found in preset files.
//
// The packed form is a raw uint32 as written by the game. When its top byte
// is 0xFE the record lives in a light plugin and only the low 12 bits are
// significant; otherwise the low 24 bits are. The textual form is
// "<plugin file name>|<hex local id>". Both must agree once masked with the
// packed form's mask.
package formid
