package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/tally/pkg/jvm"
)

// suiteFile is the YAML shape of one case file: a class and its methods'
// case declarations, written in the same "(<args>) -> <outcome>" form the
// outcome log uses.
type suiteFile struct {
	Suite   string       `yaml:"suite"`
	Class   string       `yaml:"class"`
	Methods []methodDecl `yaml:"methods"`
}

type methodDecl struct {
	Name       string   `yaml:"name"`
	Descriptor string   `yaml:"descriptor"`
	Cases      []string `yaml:"cases"`
}

// ParseDecl parses one case declaration string, "(<args>) -> <outcome>".
func ParseDecl(s string) (jvm.ValueList, Outcome, error) {
	lhs, rhs, ok := strings.Cut(s, "->")
	if !ok {
		return nil, "", fmt.Errorf("declaration %q has no \"->\"", s)
	}
	args, err := jvm.ParseValueList(strings.TrimSpace(lhs))
	if err != nil {
		return nil, "", fmt.Errorf("declaration %q: %w", s, err)
	}
	outcome := Outcome(strings.TrimSpace(rhs))
	if outcome == "" {
		return nil, "", fmt.Errorf("declaration %q has an empty outcome", s)
	}
	return args, outcome, nil
}

// LoadInto parses one YAML case file into reg. Declarations feed through
// Declare, so an inconsistent file surfaces ErrInconsistent annotated
// with the source name.
func LoadInto(reg *Registry, data []byte, source string) error {
	var sf suiteFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("catalog: %s: %w", source, err)
	}
	if sf.Class == "" {
		return fmt.Errorf("catalog: %s declares no class", source)
	}
	for _, md := range sf.Methods {
		if md.Name == "" {
			return fmt.Errorf("catalog: %s: method with no name under class %s", source, sf.Class)
		}
		m := jvm.MethodID{ClassName: sf.Class, Name: md.Name, Descriptor: md.Descriptor}
		for _, decl := range md.Cases {
			args, outcome, err := ParseDecl(decl)
			if err != nil {
				return fmt.Errorf("catalog: %s: method %s: %w", source, md.Name, err)
			}
			if err := reg.Declare(m, args, outcome); err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}
		}
	}
	return nil
}

// LoadFile loads one YAML case file from disk into reg.
func LoadFile(reg *Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	return LoadInto(reg, data, path)
}

//go:embed cases/*.yaml
var builtinFS embed.FS

var (
	builtinOnce sync.Once
	builtinReg  *Registry
	builtinErr  error
)

// Builtin returns the embedded benchmark catalog, built on first use and
// shared. Callers must not mutate it; to combine the builtin cases with
// extra files, load both into a fresh registry via LoadBuiltin.
func Builtin() (*Registry, error) {
	builtinOnce.Do(func() {
		reg := NewRegistry()
		if builtinErr = LoadBuiltin(reg); builtinErr == nil {
			builtinReg = reg
		}
	})
	return builtinReg, builtinErr
}

// LoadBuiltin loads the embedded benchmark catalog into reg, in file-name
// order.
func LoadBuiltin(reg *Registry) error {
	names, err := fs.Glob(builtinFS, "cases/*.yaml")
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, name := range names {
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return err
		}
		if err := LoadInto(reg, data, name); err != nil {
			return err
		}
	}
	return nil
}
