// Package parse expands submission records into per-residue prediction rows.
//
// A submission row carries a space-separated residue list. Each token becomes
// one PredictionRow with Prediction set to 1. Splitting is on single spaces
// after trimming the field, so an empty prediction yields one row with an
// empty residue id, and two adjacent spaces yield an empty token. Those rows
// never match a target pair and are kept so row counts stay comparable with
// other scorers of the same submission format.
package parse
