package config

// Manifest is the on-disk form of freshen.yaml or freshen.toml.
type Manifest struct {
	Version  string            `yaml:"version" toml:"version"`
	OutDir   string            `yaml:"outDir" toml:"outDir"`
	Tools    ToolsDTO          `yaml:"tools" toml:"tools"`
	CFlags   []string          `yaml:"cflags" toml:"cflags"`
	LDFlags  []string          `yaml:"ldflags" toml:"ldflags"`
	Includes []string          `yaml:"includes" toml:"includes"`
	Headers  []string          `yaml:"headers" toml:"headers"`
	Env      map[string]string `yaml:"env" toml:"env"`
	Copy     []CopyDTO         `yaml:"copy" toml:"copy"`
	ClassGen []string          `yaml:"classgen" toml:"classgen"`
	Lex      []string          `yaml:"lex" toml:"lex"`
	Yacc     []string          `yaml:"yacc" toml:"yacc"`
	Sources  []string          `yaml:"sources" toml:"sources"`
	Link     LinkDTO           `yaml:"link" toml:"link"`
	Timeout  string            `yaml:"timeout" toml:"timeout"`
}

// ToolsDTO overrides the program used for each helper.
type ToolsDTO struct {
	Lex      string `yaml:"lex" toml:"lex"`
	Yacc     string `yaml:"yacc" toml:"yacc"`
	Cc       string `yaml:"cc" toml:"cc"`
	Link     string `yaml:"link" toml:"link"`
	ClassGen string `yaml:"classgen" toml:"classgen"`
	Copy     string `yaml:"copy" toml:"copy"`
}

// CopyDTO is a single file copy.
type CopyDTO struct {
	From string `yaml:"from" toml:"from"`
	To   string `yaml:"to" toml:"to"`
}

// LinkDTO describes the final link step.
type LinkDTO struct {
	Output string   `yaml:"output" toml:"output"`
	Libs   []string `yaml:"libs" toml:"libs"`
}
