package models

// NoSelection is the key reported by an empty selection
const NoSelection = "none"

// Entry is one row of a string table: a key with its source and target strings
type Entry struct {
	Key    string `json:"key" yaml:"key"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// GlossaryTerm is a single source term and its agreed translation
type GlossaryTerm struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Comments holds comment lines found in a .lang file.
// Keys are either "key:<entry key>" for a comment attached to the following
// entry, or "line:<index>" for a free-standing comment.
type Comments map[string]string

// Edit is a single target change, used for review and reporting
type Edit struct {
	Key    string `json:"key" yaml:"key"`
	Before string `json:"before" yaml:"before"`
	After  string `json:"after" yaml:"after"`
}
