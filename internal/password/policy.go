// Package password turns the server's textual password requirements into a
// policy that can be checked locally before the password is submitted.
package password

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrMalformedRequirement = errors.New("malformed password requirement")
	ErrUnknownRequirement   = errors.New("unknown password requirement")
)

// Requirement is a single "Name(N)" descriptor as sent by the server.
type Requirement struct {
	// Label is the descriptor exactly as received, used for display.
	Label string
	// Name is the lowercased requirement name.
	Name string
	Min  int
}

// Result pairs a requirement with whether a candidate password satisfies it.
type Result struct {
	Requirement
	Met bool
}

type counter func(string) int

var counters = map[string]counter{
	"length":     utf8.RuneCountInString,
	"uppercase":  countFunc(unicode.IsUpper),
	"numbers":    countFunc(unicode.IsDigit),
	"special":    countFunc(isSpecial),
	"nonletters": countFunc(func(r rune) bool { return !unicode.IsLetter(r) }),
}

func countFunc(match func(rune) bool) counter {
	return func(s string) int {
		n := 0
		for _, r := range s {
			if match(r) {
				n++
			}
		}
		return n
	}
}

func isSpecial(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
}

// Policy is an ordered set of requirements.
type Policy struct {
	requirements []Requirement
}

// ParseRequirement parses a descriptor like "Length(8)".
func ParseRequirement(descriptor string) (Requirement, error) {
	label := strings.TrimSpace(descriptor)

	open := strings.IndexByte(label, '(')
	if open <= 0 || !strings.HasSuffix(label, ")") {
		return Requirement{}, fmt.Errorf("%w: %q", ErrMalformedRequirement, descriptor)
	}

	name := strings.ToLower(strings.TrimSpace(label[:open]))
	if _, known := counters[name]; !known {
		return Requirement{}, fmt.Errorf("%w: %q", ErrUnknownRequirement, descriptor)
	}

	n, err := strconv.Atoi(strings.TrimSpace(label[open+1 : len(label)-1]))
	if err != nil || n < 0 {
		return Requirement{}, fmt.Errorf("%w: %q", ErrMalformedRequirement, descriptor)
	}

	return Requirement{
		Label: label,
		Name:  name,
		Min:   n,
	}, nil
}

// ParsePolicy converts the full descriptor list. Any bad entry fails the
// whole policy.
func ParsePolicy(descriptors []string) (*Policy, error) {
	p := &Policy{requirements: make([]Requirement, 0, len(descriptors))}
	for _, d := range descriptors {
		req, err := ParseRequirement(d)
		if err != nil {
			return nil, err
		}
		p.requirements = append(p.requirements, req)
	}
	return p, nil
}

func (p *Policy) Requirements() []Requirement {
	return p.requirements
}

// Check evaluates every requirement, in order, against password.
func (p *Policy) Check(password string) []Result {
	results := make([]Result, 0, len(p.requirements))
	for _, req := range p.requirements {
		results = append(results, Result{
			Requirement: req,
			Met:         counters[req.Name](password) >= req.Min,
		})
	}
	return results
}

// Failed returns only the requirements password does not meet.
func (p *Policy) Failed(password string) []Requirement {
	var failed []Requirement
	for _, res := range p.Check(password) {
		if !res.Met {
			failed = append(failed, res.Requirement)
		}
	}
	return failed
}

func (p *Policy) Satisfied(password string) bool {
	return len(p.Failed(password)) == 0
}
