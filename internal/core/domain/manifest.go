package domain

import "time"

// Tools names the program used for each helper. Empty fields fall back to
// DefaultTools.
type Tools struct {
	Lex      string
	Yacc     string
	Cc       string
	Link     string
	ClassGen string
	Copy     string
}

// DefaultTools returns the programs used when the manifest does not name any.
func DefaultTools() Tools {
	return Tools{
		Lex:      "flex",
		Yacc:     "bison",
		Cc:       "cc",
		Link:     "cc",
		ClassGen: "classgen",
		Copy:     "cp",
	}
}

// WithDefaults fills every empty field from DefaultTools.
func (t Tools) WithDefaults() Tools {
	d := DefaultTools()
	if t.Lex == "" {
		t.Lex = d.Lex
	}
	if t.Yacc == "" {
		t.Yacc = d.Yacc
	}
	if t.Cc == "" {
		t.Cc = d.Cc
	}
	if t.Link == "" {
		t.Link = d.Link
	}
	if t.ClassGen == "" {
		t.ClassGen = d.ClassGen
	}
	if t.Copy == "" {
		t.Copy = d.Copy
	}
	return t
}

// CopySpec is a single file copy step.
type CopySpec struct {
	From string
	To   string
}

// LinkSpec describes the final link step. An empty Output disables it.
type LinkSpec struct {
	Output string
	Libs   []string
}

// Manifest is the project configuration consumed by the toolchain planner.
// Paths are relative to Root.
type Manifest struct {
	Root     string
	OutDir   string
	Tools    Tools
	CFlags   []string
	LDFlags  []string
	Includes []string
	// Headers are extra inputs of every compile step.
	Headers  []string
	Env      map[string]string
	Copy     []CopySpec
	ClassGen []string
	Lex      []string
	Yacc     []string
	Sources  []string
	Link     LinkSpec
	Timeout  time.Duration
}
