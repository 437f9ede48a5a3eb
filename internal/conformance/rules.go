package conformance

import (
	_ "embed"
	"fmt"
	"regexp"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed rules.cue
var rulesSource string

// rangeRule constrains an element's numeric text.
type rangeRule struct {
	Min          float64
	Max          float64
	HasMax       bool
	ExclusiveMin bool
}

// ruleSet is the compiled form of rules.cue.
type ruleSet struct {
	SchemaVersion string
	IDPattern     *regexp.Regexp
	Required      []string
	Enums         map[string]map[string]bool
	Ranges        map[string]rangeRule
	Entities      map[string]bool
}

var (
	rulesOnce sync.Once
	rulesVal  *ruleSet
)

// rules returns the compiled rule set. The source is embedded, so a
// compile failure is a programmer error and panics at first use.
func rules() *ruleSet {
	rulesOnce.Do(func() {
		rs, err := compileRules(rulesSource)
		if err != nil {
			panic(fmt.Sprintf("conformance: embedded rules: %v", err))
		}
		rulesVal = rs
	})
	return rulesVal
}

func compileRules(src string) (*ruleSet, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	if err := v.Err(); err != nil {
		return nil, cueError(err)
	}

	rs := &ruleSet{
		Enums:    make(map[string]map[string]bool),
		Ranges:   make(map[string]rangeRule),
		Entities: make(map[string]bool),
	}

	version, err := v.LookupPath(cue.ParsePath("schemaVersion")).String()
	if err != nil {
		return nil, cueError(err)
	}
	rs.SchemaVersion = version

	patternStr, err := v.LookupPath(cue.ParsePath("idPattern")).String()
	if err != nil {
		return nil, cueError(err)
	}
	rs.IDPattern, err = regexp.Compile(patternStr)
	if err != nil {
		return nil, fmt.Errorf("idPattern: %w", err)
	}

	rs.Required, err = stringList(v.LookupPath(cue.ParsePath("required")))
	if err != nil {
		return nil, err
	}

	entities, err := stringList(v.LookupPath(cue.ParsePath("entities")))
	if err != nil {
		return nil, err
	}
	for _, e := range entities {
		rs.Entities[e] = true
	}

	enumIter, err := v.LookupPath(cue.ParsePath("enums")).Fields()
	if err != nil {
		return nil, cueError(err)
	}
	for enumIter.Next() {
		values, err := stringList(enumIter.Value())
		if err != nil {
			return nil, err
		}
		set := make(map[string]bool, len(values))
		for _, val := range values {
			set[val] = true
		}
		rs.Enums[enumIter.Label()] = set
	}

	rangeIter, err := v.LookupPath(cue.ParsePath("ranges")).Fields()
	if err != nil {
		return nil, cueError(err)
	}
	for rangeIter.Next() {
		rule, err := parseRange(rangeIter.Value())
		if err != nil {
			return nil, fmt.Errorf("ranges.%s: %w", rangeIter.Label(), err)
		}
		rs.Ranges[rangeIter.Label()] = rule
	}

	return rs, nil
}

func parseRange(v cue.Value) (rangeRule, error) {
	var r rangeRule

	min, err := v.LookupPath(cue.ParsePath("min")).Float64()
	if err != nil {
		return r, cueError(err)
	}
	r.Min = min

	if maxVal := v.LookupPath(cue.ParsePath("max")); maxVal.Exists() {
		max, err := maxVal.Float64()
		if err != nil {
			return r, cueError(err)
		}
		r.Max = max
		r.HasMax = true
	}

	if exclVal := v.LookupPath(cue.ParsePath("exclusiveMin")); exclVal.Exists() {
		excl, err := exclVal.Bool()
		if err != nil {
			return r, cueError(err)
		}
		r.ExclusiveMin = excl
	}

	return r, nil
}

func stringList(v cue.Value) ([]string, error) {
	iter, err := v.List()
	if err != nil {
		return nil, cueError(err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, cueError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

// cueError flattens a CUE error to its first position-bearing message.
func cueError(err error) error {
	if err == nil {
		return nil
	}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		pos := positions[0]
		return fmt.Errorf("%d:%d: %s", pos.Line(), pos.Column(), first.Error())
	}
	return first
}
