package candidate

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// QuestionCount is the number of numbered question/answer slots a record can carry.
const QuestionCount = 7

// Raw is a candidate record as returned by the scoring service.
// Every field is optional: nil means the key was absent or could not be decoded.
type Raw struct {
	Name          *string  `json:"Name,omitempty"`
	Score         *float64 `json:"score,omitempty"`
	JobTitle      *string  `json:"Job title,omitempty"`
	JobDepartment *string  `json:"Job department,omitempty"`
	JobLocation   *string  `json:"Job location,omitempty"`
	Stage         *string  `json:"Stage,omitempty"`
	Skills        *string  `json:"Skills,omitempty"`
	Question1     *string  `json:"Question 1,omitempty"`
	Answer1       *string  `json:"Answer 1,omitempty"`
	Question2     *string  `json:"Question 2,omitempty"`
	Answer2       *string  `json:"Answer 2,omitempty"`
	Question3     *string  `json:"Question 3,omitempty"`
	Answer3       *string  `json:"Answer 3,omitempty"`
	Question4     *string  `json:"Question 4,omitempty"`
	Answer4       *string  `json:"Answer 4,omitempty"`
	Question5     *string  `json:"Question 5,omitempty"`
	Answer5       *string  `json:"Answer 5,omitempty"`
	Question6     *string  `json:"Question 6,omitempty"`
	Answer6       *string  `json:"Answer 6,omitempty"`
	Question7     *string  `json:"Question 7,omitempty"`
	Answer7       *string  `json:"Answer 7,omitempty"`
	Experiences   *string  `json:"Experiences,omitempty"`
	Educations    *string  `json:"Educations,omitempty"`
	CreationTime  *string  `json:"Creation time,omitempty"`
	Source        *string  `json:"Source,omitempty"`
}

// Decode converts one untyped record into a Raw.
// Fields that fail to decode are left nil and the returned error lists them;
// the returned Raw is always usable.
func Decode(item map[string]interface{}) (*Raw, error) {
	raw := &Raw{}
	if item == nil {
		return raw, nil
	}

	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           raw,
		TagName:          "json",
		WeaklyTypedInput: true,
		// blankToNilHook must stay last: it can return nil.
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			finiteFloatHook,
			blankToNilHook,
		),
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return raw, err
	}

	if err := decoder.Decode(item); err != nil {
		return raw, fmt.Errorf("decoding candidate record: %w", err)
	}

	return raw, nil
}

// finiteFloatHook keeps weak typing from inventing numbers: booleans are
// not scores, and strings must parse to a finite value.
func finiteFloatHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() == reflect.Ptr {
		to = to.Elem()
	}
	if to.Kind() != reflect.Float32 && to.Kind() != reflect.Float64 {
		return data, nil
	}

	switch v := data.(type) {
	case bool:
		return nil, fmt.Errorf("expected a number, got bool %t", v)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return data, nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number, got %q", v)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("expected a finite number, got %q", v)
		}
		return f, nil
	}

	return data, nil
}

// blankToNilHook treats whitespace-only strings as absent values.
func blankToNilHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.Ptr {
		return data, nil
	}
	if s, ok := data.(string); ok && strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return data, nil
}

// qa returns the question and answer stored in slot n (1-based).
func (r *Raw) qa(n int) (*string, *string) {
	switch n {
	case 1:
		return r.Question1, r.Answer1
	case 2:
		return r.Question2, r.Answer2
	case 3:
		return r.Question3, r.Answer3
	case 4:
		return r.Question4, r.Answer4
	case 5:
		return r.Question5, r.Answer5
	case 6:
		return r.Question6, r.Answer6
	case 7:
		return r.Question7, r.Answer7
	default:
		return nil, nil
	}
}
