package cli

import "time"

// Config stores CLI options for a single generation run.
type Config struct {
	Inputs       []string
	EntryTypes   []string
	Output       string
	FrontendCmd  string
	FrontendArgs []string
	DumpDecls    string
	Timeout      time.Duration
	Verbose      bool
	Order        bool
	ShowVersion  bool
}

// OutputFilename returns destination file path for generator layer.
func (c *Config) OutputFilename() string {
	return c.Output
}

// Entries returns the entry types that prune the output.
func (c *Config) Entries() []string {
	return c.EntryTypes
}
