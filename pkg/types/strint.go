package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// StrInt64 is an int64 that is encoded as a JSON string and decoded from
// either a string or a number.
type StrInt64 int64

func NewStrInt64FromString(ss string) (StrInt64, error) {
	i, err := strconv.ParseInt(ss, 10, 64)
	if err != nil {
		return 0, err
	}

	return StrInt64(i), nil
}

func (s *StrInt64) UnmarshalYAML(unmarshal func(a interface{}) error) (err error) {
	var a int64
	if err = unmarshal(&a); err == nil {
		*s = StrInt64(a)
		return
	}

	var ss string
	if err = unmarshal(&ss); err == nil {
		s2, err2 := NewStrInt64FromString(ss)
		if err2 != nil {
			return err2
		}

		*s = s2
		return
	}

	return fmt.Errorf("StrInt64.UnmarshalYAML error: unsupported value type, not int64 or string: %w", err)
}

func (s StrInt64) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *StrInt64) UnmarshalJSON(body []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var arg interface{}
	if err := decoder.Decode(&arg); err != nil {
		return err
	}

	var str string
	switch ta := arg.(type) {
	case string:
		str = ta
	case json.Number:
		str = ta.String()
	default:
		return fmt.Errorf("StrInt64 error: unsupported value type %T", ta)
	}

	s2, err := NewStrInt64FromString(str)
	if err != nil {
		return err
	}

	*s = s2
	return nil
}

func (s StrInt64) String() string {
	return strconv.FormatInt(int64(s), 10)
}
