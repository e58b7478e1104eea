// Package checkers provides quicktest checkers shared by the test suites.
package checkers

import (
	"encoding/json"
	"errors"
	"fmt"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp"
	"github.com/yalp/jsonpath"
)

// JSONPathEquals returns a checker that reads path from a JSON document and
// compares the value found there with the expected one. The document may be
// a string, a []byte or an already decoded value. JSON numbers decode as
// float64.
//
//	c.Assert(text, checkers.JSONPathEquals("$.counts.recipes"), float64(2))
func JSONPathEquals(path string) qt.Checker {
	return &jsonPathChecker{path: path}
}

type jsonPathChecker struct {
	path string
}

func (j *jsonPathChecker) ArgNames() []string {
	return []string{"got", "want"}
}

func (j *jsonPathChecker) Check(got interface{}, args []interface{}, note func(key string, value interface{})) error {
	doc, err := decode(got)
	if err != nil {
		return qt.BadCheckf("%s", err)
	}
	note("path", j.path)

	value, err := jsonpath.Read(doc, j.path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", j.path, err)
	}
	if diff := cmp.Diff(args[0], value); diff != "" {
		note("value", value)
		note("diff (-want +got)", qt.Unquoted(diff))
		return errors.New("values are not equal")
	}
	return nil
}

func decode(got interface{}) (interface{}, error) {
	var raw []byte
	switch v := got.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return got, nil
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("got is not valid JSON: %w", err)
	}
	return doc, nil
}
