package mockapi

import (
	"io"
	"os"
	"sort"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"
)

// Fixtures maps a resource name to the records it starts with.
type Fixtures map[string][]Record

func ParseFixtures(r io.Reader) (Fixtures, error) {
	var raw map[string][]map[string]any
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Fixtures{}, nil
		}
		return nil, errors.Wrap(err, "decode fixtures")
	}
	out := make(Fixtures, len(raw))
	for name, rows := range raw {
		recs := make([]Record, 0, len(rows))
		for _, row := range rows {
			recs = append(recs, Record(row))
		}
		out[name] = recs
	}
	return out, nil
}

func LoadFixtures(path string) (Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open fixtures")
	}
	defer f.Close()
	return ParseFixtures(f)
}

// Seed inserts fixtures in file order per resource. Resources are seeded in
// name order so failures are reported deterministically.
func (s *Store) Seed(fixtures Fixtures) error {
	names := make([]string, 0, len(fixtures))
	for name := range fixtures {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, rec := range fixtures[name] {
			if _, err := s.Insert(name, rec); err != nil {
				return errors.Wrapf(err, "seed %s", name)
			}
		}
	}
	return nil
}
