// Package io reads and writes scenario files.
//
// # Formats
//
// The format follows the file extension:
//
//   - .json: JSON object
//   - .toml: TOML document with one [[criteria]] table per criterion
//   - .yaml, .yml: YAML mapping
//
// All three share the field names of [scenario.Scenario]. Relations are
// written as strings of the form "1>2" (strictly preferred) or "1=2"
// (equivalent):
//
//	{
//	  "alternatives": 3,
//	  "criteria": [
//	    {"id": 1, "weight": 0.5, "relations": ["1>2", "2>3"]},
//	    {"id": 2, "weight": 0.5, "relations": ["2>1", "1=3"]}
//	  ]
//	}
//
// Unknown fields are rejected in every format so typos surface instead of
// silently dropping judgments.
//
// # Import
//
// Use [Import] to read and validate a scenario file, or [Read] to decode
// from any io.Reader:
//
//	s, err := io.Import("scenario.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decoding failures carry INVALID_SCENARIO, an unrecognized extension
// INVALID_FORMAT and a missing file FILE_NOT_FOUND.
//
// # Export
//
// Use [Export] to write a scenario to a file, or [Write] to write to any
// io.Writer. Export followed by Import yields an equal scenario.
package io
