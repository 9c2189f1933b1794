// package study provides methods for reading EntiTies study configuration documents and the participant records they contain.
package study

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when a study configuration can not be parsed as JSON (or JSONC).
var ErrInvalidJSON = errors.New("Invalid JSON")

// ErrNotArray is returned when the top-level value of a study configuration is not a list of studies.
var ErrNotArray = errors.New("Study configuration is not a list of studies")

// ErrStudyNotFound is returned when the requested study is not present in a study configuration.
var ErrStudyNotFound = errors.New("Study not found")

// ErrNotObject is returned when a study or participant is not a JSON object.
var ErrNotObject = errors.New("Not a JSON object")

// FieldError is returned when a required property is missing from, or has the wrong type in, a study or participant record.
type FieldError struct {
	// The name of the property.
	Field string
	// A human-readable reason, for example "missing" or "not a list".
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("'%s' property is %s", e.Field, e.Reason)
}

// Study is the metadata of a single study in a study configuration.
type Study struct {
	Index    int    `json:"index"`
	Name     string `json:"name,omitempty"`
	StartsAt string `json:"starts_at,omitempty"`
	EndsAt   string `json:"ends_at,omitempty"`
}

// SelectOptions defines which study in a study configuration to use.
type SelectOptions struct {
	// The position of the study in the top-level list. Ignored if Name is not empty.
	Index int
	// The value of the study's 'name' property.
	Name string
}

// re_comment matches lines containing nothing but a '//' comment. A JSON string can not span lines
// so these never occur inside a value.
var re_comment = regexp.MustCompile(`(?m)^[ \t]*//.*$`)

// Decode parses 'body' as a study configuration. Lines that contain only a '//' comment are removed
// before parsing; anything else, including inline comments and trailing commas, must be valid JSON.
func Decode(body []byte) (gjson.Result, error) {

	body = StripComments(body)

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, ErrInvalidJSON
	}

	doc := gjson.ParseBytes(body)

	if !doc.IsArray() {
		return gjson.Result{}, ErrNotArray
	}

	return doc, nil
}

// StripComments blanks out every line of 'body' that contains only a '//' comment. Line breaks are preserved.
func StripComments(body []byte) []byte {
	return re_comment.ReplaceAll(body, nil)
}

// Select returns the study in 'doc' matching 'opts' as well as its metadata.
func Select(doc gjson.Result, opts *SelectOptions) (gjson.Result, *Study, error) {

	if !doc.IsArray() {
		return gjson.Result{}, nil, ErrNotArray
	}

	var rsp gjson.Result
	idx := -1

	if opts.Name != "" {

		i := 0

		doc.ForEach(func(_, v gjson.Result) bool {

			if Last(v, "name").String() == opts.Name {
				rsp = v
				idx = i
				return false
			}

			i += 1
			return true
		})

		if idx == -1 {
			return gjson.Result{}, nil, fmt.Errorf("%w, no study named '%s'", ErrStudyNotFound, opts.Name)
		}

	} else {

		if opts.Index < 0 {
			return gjson.Result{}, nil, fmt.Errorf("%w, invalid index %d", ErrStudyNotFound, opts.Index)
		}

		rsp = doc.Get(fmt.Sprintf("%d", opts.Index))

		if !rsp.Exists() {
			return gjson.Result{}, nil, fmt.Errorf("%w, no study at index %d", ErrStudyNotFound, opts.Index)
		}

		idx = opts.Index
	}

	if !rsp.IsObject() {
		return gjson.Result{}, nil, fmt.Errorf("Study at index %d is invalid, %w", idx, ErrNotObject)
	}

	return rsp, newStudy(idx, rsp), nil
}

// Participants returns the list of participant records for 'study'.
func Participants(study gjson.Result) (gjson.Result, error) {

	rsp := Last(study, "participants")

	if !rsp.Exists() {
		return gjson.Result{}, &FieldError{Field: "participants", Reason: "missing"}
	}

	if !rsp.IsArray() {
		return gjson.Result{}, &FieldError{Field: "participants", Reason: "not a list"}
	}

	return rsp, nil
}

// Studies returns the metadata for every study in 'doc'.
func Studies(doc gjson.Result) ([]*Study, error) {

	if !doc.IsArray() {
		return nil, ErrNotArray
	}

	studies := make([]*Study, 0)

	for idx, rsp := range doc.Array() {

		if !rsp.IsObject() {
			return nil, fmt.Errorf("Study at index %d is invalid, %w", idx, ErrNotObject)
		}

		studies = append(studies, newStudy(idx, rsp))
	}

	return studies, nil
}

func newStudy(idx int, rsp gjson.Result) *Study {

	return &Study{
		Index:    idx,
		Name:     Last(rsp, "name").String(),
		StartsAt: Last(rsp, "starts_at").String(),
		EndsAt:   Last(rsp, "ends_at").String(),
	}
}

// Last returns the value of the property 'key' in the object 'rsp'. If 'key' occurs more than once the
// final occurrence wins, as it does when decoding JSON in to a map or struct.
func Last(rsp gjson.Result, key string) gjson.Result {

	var v gjson.Result

	rsp.ForEach(func(k gjson.Result, value gjson.Result) bool {

		if k.String() == key {
			v = value
		}

		return true
	})

	return v
}
