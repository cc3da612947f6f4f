// Package todo holds the task list model and its persisted form.
//
// A task is a trimmed, non-empty string. Tasks have no identity beyond their
// text, so a list may hold the same text more than once and removal always
// targets the first occurrence.
//
// The persisted form is a JSON array of strings:
//
//	["Buy milk", "Call mom", "Buy milk"]
//
// # Validation
//
// Decode validates stored data against an embedded JSON Schema
// (draft 2020-12):
//
//	{"type": "array", "items": {"type": "string"}}
//
// Anything else (invalid JSON, an object, a number, an array holding
// non-strings) is reported as a *MalformedStoreDataError. Callers recovering
// a list at startup treat that error as an empty list.
//
// Recovered entries are kept verbatim. Only text entered by a user goes
// through Normalize.
package todo
