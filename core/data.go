package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

// Counts is a measurement histogram keyed by the classical bit string.
type Counts map[string]uint32

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

func (c Counts) String() string {
	st, err := jsonIter.Marshal(c)
	if err != nil {
		zap.L().Error("Failed to marshal core.Counts")
		return ""
	}
	return string(st)
}

// DecodeCounts reads a JSON object such as {"0": 10, "1": 6}.
func DecodeCounts(data []byte) (Counts, error) {
	c := make(Counts)
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if !isOutcomeLabel(key) {
			return InvalidParameterf("outcome label %q is not a bit string", key)
		}
		v, err := d.UInt32()
		if err != nil {
			return errors.Wrapf(err, "count of %q", key)
		}
		c[key] += v
		return nil
	})
	if err != nil {
		zap.L().Info(fmt.Sprintf("failed to decode counts/reason:%s", err))
		return nil, err
	}
	return c, nil
}

func (c *Counts) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeCounts(data)
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}

func (c Counts) Shots() uint64 {
	var shots uint64
	for _, v := range c {
		shots += uint64(v)
	}
	return shots
}

// Count returns zero for outcomes that were never observed.
func (c Counts) Count(outcome string) uint32 {
	if v, ok := c[outcome]; ok {
		return v
	}
	return 0
}

// Outcomes returns the observed labels in lexical order.
func (c Counts) Outcomes() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isOutcomeLabel(s string) bool {
	return strings.ContainsAny(s, "01") && strings.Trim(s, "01 ") == ""
}

// Marginal sums out every classical bit not listed. The label is read as
// "c_{n-1}...c_1c_0" and bits[0] becomes the rightmost bit of the result.
func (c Counts) Marginal(bits ...int) (Counts, error) {
	if len(bits) == 0 {
		return nil, InvalidParameterf("marginal needs at least one bit")
	}
	res := Counts{}
	for label, v := range c {
		s := strings.ReplaceAll(label, " ", "")
		n := len(s)
		out := make([]byte, len(bits))
		for i, b := range bits {
			if b < 0 || b >= n {
				return nil, InvalidParameterf("bit %d out of range for outcome %q", b, label)
			}
			out[len(bits)-1-i] = s[n-1-b]
		}
		res[string(out)] += v
	}
	return res, nil
}

// Parity returns the expectation of Z on every bit of the label, that is
// the shot-weighted mean of (-1)^(number of ones). It is 0 without shots.
func (c Counts) Parity() float64 {
	shots := c.Shots()
	if shots == 0 {
		return 0
	}
	sum := 0.0
	for label, v := range c {
		if strings.Count(label, "1")%2 == 0 {
			sum += float64(v)
		} else {
			sum -= float64(v)
		}
	}
	return sum / float64(shots)
}
