// Package schema holds the compiled-in field schemas of every disease domain.
// Schemas are built once at package initialization and never change afterwards.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/disease-predictor/internal/domain"
)

type definition struct {
	domain  domain.Domain
	title   string
	disease string
	fields  []domain.FieldSpec
}

// Schema is the ordered field list of one domain. All state is unexported;
// accessors hand out copies so the registered order cannot be altered.
type Schema struct {
	domain  domain.Domain
	title   string
	disease string
	fields  []domain.FieldSpec
	byName  map[string]int
}

// Domain returns the domain identifier
func (s *Schema) Domain() domain.Domain { return s.domain }

// Title returns the human-readable task title
func (s *Schema) Title() string { return s.title }

// Disease returns the condition name used in diagnosis messages
func (s *Schema) Disease() string { return s.disease }

// Dimension returns the number of fields, equal to the classifier input size
func (s *Schema) Dimension() int { return len(s.fields) }

// Fields returns a copy of the field specs in position order
func (s *Schema) Fields() []domain.FieldSpec {
	out := make([]domain.FieldSpec, len(s.fields))
	copy(out, s.fields)
	return out
}

// FieldByName looks up a field by its exact name
func (s *Schema) FieldByName(name string) (domain.FieldSpec, bool) {
	i, ok := s.byName[name]
	if !ok {
		return domain.FieldSpec{}, false
	}
	return s.fields[i], true
}

// Names returns the field names in position order
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, fs := range s.fields {
		names[i] = fs.Name
	}
	return names
}

var (
	registry = map[domain.Domain]*Schema{}
	ordered  []domain.Domain
)

func init() {
	for _, def := range definitions {
		s, err := build(def)
		if err != nil {
			panic(fmt.Sprintf("schema: %v", err))
		}
		registry[def.domain] = s
		ordered = append(ordered, def.domain)
	}
}

// build checks a definition and freezes it into a Schema
func build(def definition) (*Schema, error) {
	if def.domain == "" {
		return nil, fmt.Errorf("definition without domain")
	}
	if _, dup := registry[def.domain]; dup {
		return nil, fmt.Errorf("%s registered twice", def.domain)
	}
	if len(def.fields) == 0 {
		return nil, fmt.Errorf("%s has no fields", def.domain)
	}

	fields := make([]domain.FieldSpec, len(def.fields))
	copy(fields, def.fields)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Position < fields[j].Position })

	byName := make(map[string]int, len(fields))
	for i, fs := range fields {
		if fs.Position != i {
			return nil, fmt.Errorf("%s: positions must be contiguous from 0, found %d at index %d", def.domain, fs.Position, i)
		}
		if fs.Name == "" {
			return nil, fmt.Errorf("%s: field at position %d has no name", def.domain, i)
		}
		if _, dup := byName[fs.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate field name %q", def.domain, fs.Name)
		}
		if fs.Min > fs.Max {
			return nil, fmt.Errorf("%s: field %q has min %v > max %v", def.domain, fs.Name, fs.Min, fs.Max)
		}
		byName[fs.Name] = i
	}

	return &Schema{
		domain:  def.domain,
		title:   def.title,
		disease: def.disease,
		fields:  fields,
		byName:  byName,
	}, nil
}

// GetSchema returns the schema of a domain
func GetSchema(d domain.Domain) (*Schema, error) {
	s, ok := registry[d]
	if !ok {
		return nil, &domain.UnknownDomainError{Domain: string(d)}
	}
	return s, nil
}

// Domains returns the registered domains in a stable order
func Domains() []domain.Domain {
	out := make([]domain.Domain, len(ordered))
	copy(out, ordered)
	return out
}

// IsKnown reports whether d is one of the registered domains
func IsKnown(d domain.Domain) bool {
	_, ok := registry[d]
	return ok
}

// ParseDomain normalizes user input such as "Heart-Disease" or " thyroid "
// into a registered domain identifier.
func ParseDomain(input string) (domain.Domain, error) {
	key := strings.ToLower(strings.TrimSpace(input))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	d := domain.Domain(key)
	if !IsKnown(d) {
		return "", &domain.UnknownDomainError{Domain: input}
	}
	return d, nil
}
