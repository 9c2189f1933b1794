package study

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Participant is a single study participant's credentials.
type Participant struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Group    string `json:"group,omitempty"`
}

// NewParticipant derives a Participant from a JSON-encoded participant record. The 'username' and
// 'password' properties are required and must be scalar values. Duplicate properties resolve to
// their last occurrence.
func NewParticipant(body []byte) (*Participant, error) {

	rsp := gjson.ParseBytes(body)

	if !rsp.IsObject() {
		return nil, ErrNotObject
	}

	username, err := scalar(rsp, "username")

	if err != nil {
		return nil, err
	}

	password, err := scalar(rsp, "password")

	if err != nil {
		return nil, err
	}

	p := &Participant{
		Username: username,
		Password: password,
		Group:    Last(rsp, "group").String(),
	}

	return p, nil
}

func scalar(rsp gjson.Result, key string) (string, error) {

	v := Last(rsp, key)

	if !v.Exists() {
		return "", &FieldError{Field: key, Reason: "missing"}
	}

	switch v.Type {
	case gjson.String:
		return v.String(), nil
	case gjson.True:
		return "True", nil
	case gjson.False:
		return "False", nil
	case gjson.Null:
		return "None", nil
	case gjson.Number:
		return FormatNumber(v.Raw), nil
	default:
		return "", &FieldError{Field: key, Reason: "not a scalar value"}
	}
}

// FormatNumber renders the JSON number 'raw' the way the EntiTies tooling prints it: integers
// verbatim, everything else as the shortest decimal that round-trips, with a trailing ".0" for
// whole values and exponent notation outside [1e-4, 1e16).
func FormatNumber(raw string) string {

	if !strings.ContainsAny(raw, ".eE") {

		if raw == "-0" {
			return "0"
		}

		return raw
	}

	f, err := strconv.ParseFloat(raw, 64)

	if err != nil && !math.IsInf(f, 0) {
		return raw
	}

	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])

	if exp < -4 || exp >= 16 {
		return sci
	}

	str := strconv.FormatFloat(f, 'f', -1, 64)

	if !strings.Contains(str, ".") {
		str += ".0"
	}

	return str
}
