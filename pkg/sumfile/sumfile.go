package sumfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const Blake2b = "b2"

type hashedEntity struct {
	hash   []byte
	entity string
	algo   string
}

// Sumfile records the hash of each staged file, one "algo:hash name" entry
// per line, sorted by name.
type Sumfile struct {
	entities []hashedEntity
}

func HashFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	h, _ := blake2b.New256(nil)

	if _, err := io.Copy(h, f); err != nil {
		return nil, errors.Wrapf(err, "hashing %s", path)
	}

	return h.Sum(nil), nil
}

func (s *Sumfile) Load(r io.Reader) error {
	br := bufio.NewReader(r)

	for {
		line, err := br.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return err
		}

		if len(line) > 0 {
			if err := s.loadLine(line); err != nil {
				return err
			}
		}

		if err == io.EOF {
			break
		}
	}

	sort.Slice(s.entities, func(i, j int) bool {
		return s.entities[i].entity < s.entities[j].entity
	})

	return nil
}

func (s *Sumfile) loadLine(line []byte) error {
	colon := bytes.IndexByte(line, ':')
	if colon == -1 {
		return nil
	}

	space := bytes.IndexByte(line, ' ')
	if space == -1 || space < colon {
		return nil
	}

	b, err := base58.Decode(string(line[colon+1 : space]))
	if err != nil {
		return errors.Wrapf(err, "decoding hash")
	}

	s.entities = append(s.entities, hashedEntity{
		algo:   string(line[:colon]),
		hash:   b,
		entity: string(bytes.TrimSpace(line[space+1:])),
	})

	return nil
}

// Add records h for entity, replacing any existing entry.
func (s *Sumfile) Add(entity, algo string, h []byte) string {
	idx := s.search(entity)

	he := hashedEntity{algo: algo, hash: h, entity: entity}

	if idx < len(s.entities) && s.entities[idx].entity == entity {
		s.entities[idx] = he
	} else {
		s.entities = append(s.entities, hashedEntity{})
		copy(s.entities[idx+1:], s.entities[idx:])
		s.entities[idx] = he
	}

	return algo + ":" + base58.Encode(h)
}

func (s *Sumfile) Save(w io.Writer) error {
	for _, he := range s.entities {
		sh := base58.Encode(he.hash)
		if _, err := fmt.Fprintf(w, "%s:%s %s\n", he.algo, sh, he.entity); err != nil {
			return err
		}
	}

	return nil
}

func (s *Sumfile) WriteFile(path string) error {
	var buf bytes.Buffer

	if err := s.Save(&buf); err != nil {
		return err
	}

	return errors.Wrapf(os.WriteFile(path, buf.Bytes(), 0644), "writing %s", path)
}

func ReadFile(path string) (*Sumfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	var sf Sumfile

	if err := sf.Load(f); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	return &sf, nil
}

func (s *Sumfile) Lookup(entity string) (string, []byte, bool) {
	idx := s.search(entity)

	if idx < len(s.entities) && s.entities[idx].entity == entity {
		return s.entities[idx].algo, s.entities[idx].hash, true
	}

	return "", nil, false
}

func (s *Sumfile) Entities() []string {
	var names []string

	for _, he := range s.entities {
		names = append(names, he.entity)
	}

	return names
}

// Verify checks that every entry exists in dir with a matching hash.
func (s *Sumfile) Verify(dir string) error {
	for _, he := range s.entities {
		if !plainName(he.entity) {
			return fmt.Errorf("manifest entry is not a plain file name: %s", he.entity)
		}

		if he.algo != Blake2b {
			return fmt.Errorf("unsupported hash algorithm %s for %s", he.algo, he.entity)
		}

		h, err := HashFile(filepath.Join(dir, he.entity))
		if err != nil {
			return err
		}

		if !bytes.Equal(h, he.hash) {
			return fmt.Errorf("hash mismatch for %s", he.entity)
		}
	}

	return nil
}

// plainName reports whether name refers to a file directly inside the
// staging directory.
func plainName(name string) bool {
	return name != "" && name != "." && name != ".." && filepath.Base(name) == name
}

func (s *Sumfile) search(entity string) int {
	return sort.Search(len(s.entities), func(i int) bool {
		return s.entities[i].entity >= entity
	})
}
