// Package extract turns raw advertisement fields into normalized attributes.
//
// Every function here is pure and deterministic: a pattern that does not
// match is not an error, it yields a null value or a "no information"
// category that downstream encodings carry as such.
package extract
