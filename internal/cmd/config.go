//go:build !tinygo

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"unicode"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file holding every persistent flag
// with its default value.
type ConfigInit struct {
	Format string `help:"Output format" enum:"yaml,toml" default:"yaml"`
	Output string `help:"Destination file path (defaults to padcalc.<format> in the current directory)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

// Run writes the template.
func (c *ConfigInit) Run() error {
	root := configTemplate()

	dest := c.Output
	if dest == "" {
		dest = "padcalc." + c.Format
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	var data []byte
	var err error
	switch c.Format {
	case "yaml":
		data, err = yaml.Marshal(root)
	case "toml":
		data, err = toml.Marshal(root)
	default:
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

// configTemplate lists the persistent flags of CLI keyed the way the
// configuration resolvers look them up.
func configTemplate() map[string]any {
	out := map[string]any{}
	collectFlags(out, reflect.TypeOf(CLI{}), "")
	return out
}

func collectFlags(out map[string]any, t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if _, ok := f.Tag.Lookup("cmd"); ok {
			continue
		}
		if _, ok := f.Tag.Lookup("embed"); ok {
			collectFlags(out, f.Type, prefix+f.Tag.Get("prefix"))
			continue
		}
		def, ok := f.Tag.Lookup("default")
		if !ok {
			continue
		}
		key := strings.ReplaceAll(prefix+kebab(f.Name), "-", "_")
		if f.Type.Kind() == reflect.Bool {
			out[key] = def == "true"
		} else {
			out[key] = def
		}
	}
}

// kebab converts a Go field name to the flag name Kong derives from it.
func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
