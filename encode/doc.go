// Package encode renders document tree projections for terminals, as
// indented JSON or YAML, optionally coloured.
package encode
