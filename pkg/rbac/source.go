package rbac

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// PolicySource provides the route policy the gate enforces.
type PolicySource interface {
	Load(ctx context.Context) (Policy, error)
}

type staticSource struct {
	policy Policy
}

// NewStaticSource returns a source that always yields a copy of policy.
func NewStaticSource(policy Policy) PolicySource {
	return &staticSource{policy: clonePolicy(policy)}
}

func (s *staticSource) Load(context.Context) (Policy, error) {
	return clonePolicy(s.policy), nil
}

type fileSource struct {
	path string
}

// NewFileSource returns a source that reads a YAML policy from path.
// Keys missing from the file fall back to DefaultPolicy.
func NewFileSource(path string) PolicySource {
	return &fileSource{path: path}
}

func (s *fileSource) Load(context.Context) (Policy, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Policy{}, fmt.Errorf("%w: %s", ErrPolicyNotFound, s.path)
		}
		return Policy{}, fmt.Errorf("read policy %s: %w", s.path, err)
	}
	return ParsePolicy(data)
}

// ParsePolicy decodes a YAML policy document on top of DefaultPolicy and validates it.
func ParsePolicy(data []byte) (Policy, error) {
	policy := DefaultPolicy()
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return Policy{}, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	if err := policy.Validate(); err != nil {
		return Policy{}, err
	}
	return policy, nil
}

// LoadPolicy loads and validates a policy from src.
func LoadPolicy(ctx context.Context, src PolicySource) (Policy, error) {
	policy, err := src.Load(ctx)
	if err != nil {
		return Policy{}, err
	}
	if err := policy.Validate(); err != nil {
		return Policy{}, err
	}
	return policy, nil
}

func clonePolicy(p Policy) Policy {
	out := Policy{
		LoginPath:      p.LoginPath,
		PublicPaths:    append([]string(nil), p.PublicPaths...),
		PublicPrefixes: append([]string(nil), p.PublicPrefixes...),
		PublicSuffixes: append([]string(nil), p.PublicSuffixes...),
		RolePrefixes:   make(map[Role][]string, len(p.RolePrefixes)),
	}
	for role, prefixes := range p.RolePrefixes {
		out.RolePrefixes[role] = append([]string(nil), prefixes...)
	}
	return out
}
