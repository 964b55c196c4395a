// Package canon computes stable fingerprints of scoring inputs.
//
// Values are serialized as canonical JSON (sorted object keys by UTF-16 code
// units, no HTML escaping, NFC-normalized strings, no floats, no nulls) and
// hashed with SHA-256 under a domain prefix. Two tables with the same rows in
// the same order always produce the same fingerprint regardless of file
// encoding details such as line endings, quoting or Unicode normalization form.
package canon
