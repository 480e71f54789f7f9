package phewasnet

import (
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// FlagSlice collects a flag that may be passed more than once, e.g.,
// -input a.tsv -input b.tsv.
type FlagSlice []string

func (i *FlagSlice) String() string {
	if i == nil {
		return ""
	}
	return strings.Join(*i, ",")
}

func (i *FlagSlice) Set(value string) error {
	*i = append(*i, value)
	return nil
}

// NullFloatFlag is a numeric flag that stays null unless it is set, so that an
// omitted threshold is distinguishable from a threshold of zero.
type NullFloatFlag struct {
	null.Float
}

func (f *NullFloatFlag) String() string {
	if f == nil || !f.Valid {
		return ""
	}
	return strconv.FormatFloat(f.Float64, 'g', -1, 64)
}

// Set accepts a float. The empty string clears the flag.
func (f *NullFloatFlag) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		f.Float = null.Float{}
		return nil
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	f.Float = null.FloatFrom(v)

	return nil
}
