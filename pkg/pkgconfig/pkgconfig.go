package pkgconfig

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"lab47.dev/crashlink/pkg/data"
)

type Var struct {
	Name  string
	Value string
}

type Config struct {
	Path        string
	Id          string
	Vars        []Var
	Name        string
	Description string
	URL         string
	Version     string
	Requires    []string
	Cflags      string
	Libs        string
	PrivLibs    string
}

// FromBundle describes a resolved bundle as a pkg-config package so that
// non-engine builds (tools, tests) can link the same SDK.
func FromBundle(id, version string, b *data.Bundle) *Config {
	cfg := &Config{
		Id:          id,
		Name:        id,
		Description: "Crash reporting SDK",
		Version:     version,
	}

	if !b.HasPlatformSupport {
		cfg.Description += " (not available for this platform)"
		return cfg
	}

	prefix := filepath.Dir(b.IncludePath)
	libdir := filepath.Join(prefix, "lib")

	cfg.Vars = []Var{
		{"prefix", escape(prefix)},
		{"includedir", "${prefix}/" + filepath.Base(b.IncludePath)},
		{"libdir", "${prefix}/lib"},
	}

	cflags := []string{"-I${includedir}"}
	for _, d := range b.Definitions {
		cflags = append(cflags, "-D"+d)
	}

	var libs []string
	for _, lib := range b.Libraries {
		if rel, err := filepath.Rel(libdir, lib); err == nil && !strings.HasPrefix(rel, "..") {
			lib = "${libdir}/" + escape(filepath.ToSlash(rel))
		} else {
			lib = escape(lib)
		}

		libs = append(libs, lib)
	}

	var priv []string
	for _, lib := range b.SystemLibraries {
		priv = append(priv, "-l"+strings.TrimSuffix(lib, ".lib"))
	}

	cfg.Cflags = strings.Join(cflags, " ")
	cfg.Libs = strings.Join(libs, " ")
	cfg.PrivLibs = strings.Join(priv, " ")

	return cfg
}

// escape backslash-escapes whitespace, which is how pkg-config keeps a path
// holding spaces as one argument.
func escape(s string) string {
	var sb strings.Builder

	for _, r := range s {
		if r == ' ' || r == '\t' {
			sb.WriteByte('\\')
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

func (c *Config) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, v := range c.Vars {
		fmt.Fprintf(bw, "%s=%s\n", v.Name, v.Value)
	}

	if len(c.Vars) > 0 {
		fmt.Fprintln(bw)
	}

	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(bw, "%s: %s\n", name, value)
		}
	}

	field("Name", c.Name)
	field("Description", c.Description)
	field("URL", c.URL)
	field("Version", c.Version)
	field("Requires", strings.Join(c.Requires, ", "))
	field("Cflags", c.Cflags)
	field("Libs", c.Libs)
	field("Libs.private", c.PrivLibs)

	return bw.Flush()
}

// WriteFile writes the config to dir/<id>.pc and returns the path.
func (c *Config) WriteFile(dir string) (string, error) {
	path := filepath.Join(dir, c.Id+".pc")

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "creating %s", path)
	}

	defer f.Close()

	if err := c.Write(f); err != nil {
		return "", err
	}

	c.Path = path

	return path, f.Close()
}

func LoadAll(root string) ([]*Config, error) {
	var configs []*Config

	err := filepath.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if filepath.Ext(path) == ".pc" {
			cfg, err := Load(path)
			if err != nil {
				return err
			}

			configs = append(configs, cfg)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return configs, nil
}

func Load(path string) (*Config, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer r.Close()

	cfg, err := Parse(r)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	cfg.Path = path
	cfg.Id = strings.TrimSuffix(filepath.Base(path), ".pc")

	return cfg, nil
}

// Parse reads a .pc file, expanding ${var} references in every value.
func Parse(r io.Reader) (*Config, error) {
	br := bufio.NewReader(r)

	vars := map[string]string{}

	var cfg Config

	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}

		if line != "" {
			parseLine(&cfg, vars, line)
		}

		if err == io.EOF {
			break
		}
	}

	return &cfg, nil
}

func parseLine(cfg *Config, vars map[string]string, line string) {
	var (
		name  string
		value string
		isVar bool
	)

outer:
	for i, b := range line {
		switch b {
		case '#':
			return
		case '=':
			name = strings.TrimSpace(line[:i])
			value = strings.TrimSpace(line[i+1:])
			isVar = true
			break outer
		case ':':
			name = strings.TrimSpace(line[:i])
			value = strings.TrimSpace(line[i+1:])
			break outer
		}
	}

	if name == "" {
		return
	}

	value = expand(value, vars)

	if isVar {
		vars[name] = value
		cfg.Vars = append(cfg.Vars, Var{Name: name, Value: value})
		return
	}

	switch name {
	case "Name":
		cfg.Name = value
	case "Description":
		cfg.Description = value
	case "URL":
		cfg.URL = value
	case "Version":
		cfg.Version = value
	case "Requires":
		for _, req := range strings.Split(value, ",") {
			if req = strings.TrimSpace(req); req != "" {
				cfg.Requires = append(cfg.Requires, req)
			}
		}
	case "Cflags":
		cfg.Cflags = value
	case "Libs":
		cfg.Libs = value
	case "Libs.private":
		cfg.PrivLibs = value
	}
}

func expand(input string, vars map[string]string) string {
	var sb strings.Builder

	var (
		state int
		si    int
	)

	for i, b := range input {
		switch state {
		case 0:
			if b == '$' {
				state = 1
			} else {
				sb.WriteRune(b)
			}
		case 1:
			if b == '{' {
				state = 2
				si = i + 1
			} else {
				sb.WriteRune('$')
				sb.WriteRune(b)
				state = 0
			}
		case 2:
			if b == '}' {
				sb.WriteString(vars[input[si:i]])
				state = 0
			}
		}
	}

	return sb.String()
}
