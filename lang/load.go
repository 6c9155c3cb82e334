package lang

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dhamidi/parsource/parse"
)

// definition is the YAML shape of a language file.
type definition struct {
	Name           string     `koanf:"name"`
	Extensions     []string   `koanf:"extensions"`
	Escape         string     `koanf:"escape"`
	Trim           string     `koanf:"trim"`
	Comments       []string   `koanf:"comments"`
	Quotes         []string   `koanf:"quotes"`
	Blocks         [][]string `koanf:"blocks"`
	LineEnd        []string   `koanf:"line_end"`
	StatementEnd   []string   `koanf:"statement_end"`
	Separators     []string   `koanf:"separators"`
	Keywords       []string   `koanf:"keywords"`
	OperatorInfix  []string   `koanf:"operator_infix"`
	OperatorPrefix []string   `koanf:"operator_prefix"`
	OperatorSuffix []string   `koanf:"operator_suffix"`
}

func (d *definition) table() (*parse.Table, error) {
	cfg := parse.Config{
		Escape:         d.Escape,
		Trim:           d.Trim,
		Comments:       d.Comments,
		Quotes:         d.Quotes,
		LineEnd:        d.LineEnd,
		StatementEnd:   d.StatementEnd,
		Separators:     d.Separators,
		Keywords:       d.Keywords,
		OperatorInfix:  d.OperatorInfix,
		OperatorPrefix: d.OperatorPrefix,
		OperatorSuffix: d.OperatorSuffix,
	}
	for _, pair := range d.Blocks {
		if len(pair) != 2 {
			return nil, fmt.Errorf("block pair must have two literals, got %v", pair)
		}
		cfg.Blocks = append(cfg.Blocks, [2]string{pair[0], pair[1]})
	}
	return parse.NewTable(cfg)
}

func loadDefinition(path string) (*definition, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("read language file %s: %w", path, err)
	}
	var def definition
	if err := k.Unmarshal("", &def); err != nil {
		return nil, fmt.Errorf("decode language file %s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &def, nil
}

// Load reads a YAML language definition, builds its delimiter table and
// registers it. The name defaults to the file's base name.
func Load(path string) (string, *parse.Table, error) {
	def, err := loadDefinition(path)
	if err != nil {
		return "", nil, err
	}
	table, err := def.table()
	if err != nil {
		return "", nil, fmt.Errorf("language file %s: %w", path, err)
	}
	Register(def.Name, table, def.Extensions...)
	return def.Name, table, nil
}

// LoadDir loads every .yaml/.yml file in dir into the registry.
func LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read language dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml":
		default:
			continue
		}
		if _, _, err := Load(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
