package formats

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// BlockState is a parsed blockstate document. Exactly one of Variants or
// Multipart is populated.
type BlockState struct {
	// Variants maps a selector key ("facing=north,half=top", "" for all
	// states) to one or more weighted candidate variants.
	Variants map[string][]Variant
	// Multipart lists independently-conditioned parts that combine.
	Multipart []MultipartCase
}

// Variant references one model together with its placement rotation.
type Variant struct {
	Model  string
	X      int // rotation around x in 90-degree steps (0/90/180/270)
	Y      int // rotation around y in 90-degree steps
	Z      int // rotation around z in 90-degree steps
	UVLock bool
	Weight int // candidate weight, defaults to 1
}

// MultipartCase applies its variants when the condition matches (a nil
// condition always matches).
type MultipartCase struct {
	When  *Condition
	Apply []Variant
}

// Condition is a boolean predicate over a block's property assignment:
// either a leaf property match (each value may be an "a|b" alternation), or
// an OR/AND combination of sub-conditions.
type Condition struct {
	Or    []Condition
	And   []Condition
	Match map[string]string
}

// Eval evaluates the condition against a property assignment.
func (c *Condition) Eval(props map[string]string) bool {
	if c == nil {
		return true
	}
	if len(c.Or) > 0 {
		for i := range c.Or {
			if c.Or[i].Eval(props) {
				return true
			}
		}
		return false
	}
	if len(c.And) > 0 {
		for i := range c.And {
			if !c.And[i].Eval(props) {
				return false
			}
		}
		return true
	}
	for key, want := range c.Match {
		got, ok := props[key]
		if !ok {
			return false
		}
		if !matchAlternation(want, got) {
			return false
		}
	}
	return true
}

// matchAlternation matches got against "a|b|c" style values.
func matchAlternation(want, got string) bool {
	for want != "" {
		alt := want
		if idx := strings.IndexByte(want, '|'); idx >= 0 {
			alt = want[:idx]
			want = want[idx+1:]
		} else {
			want = ""
		}
		if alt == got {
			return true
		}
	}
	return false
}

// SelectorKey builds the canonical comma-joined "key=value" selector for a
// property assignment, with keys sorted for stable comparison.
func SelectorKey(props map[string]string) string {
	if len(props) == 0 {
		return ""
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(props[k])
	}
	return b.String()
}

// ParseSelectorKey splits a "a=1,b=2" selector key into pairs. The empty key
// yields an empty map (matches every state).
func ParseSelectorKey(key string) (map[string]string, error) {
	pairs := map[string]string{}
	if key == "" {
		return pairs, nil
	}
	for _, part := range strings.Split(key, ",") {
		eq := strings.IndexByte(part, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("%w: selector pair %q", ErrMalformedDefinition, part)
		}
		pairs[part[:eq]] = part[eq+1:]
	}
	return pairs, nil
}

type jsonBlockState struct {
	Variants  map[string]json.RawMessage `json:"variants"`
	Multipart []jsonMultipartCase        `json:"multipart"`
}

type jsonVariant struct {
	Model  string `json:"model"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Z      int    `json:"z"`
	UVLock bool   `json:"uvlock"`
	Weight *int   `json:"weight"`
}

type jsonMultipartCase struct {
	When  json.RawMessage `json:"when"`
	Apply json.RawMessage `json:"apply"`
}

// DecodeBlockState validates and decodes a blockstate document.
func DecodeBlockState(data []byte) (*BlockState, error) {
	if err := validateBlockState(data); err != nil {
		return nil, err
	}

	var doc jsonBlockState
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDefinition, err)
	}

	if len(doc.Variants) == 0 && len(doc.Multipart) == 0 {
		return nil, fmt.Errorf("%w: blockstate defines neither variants nor multipart", ErrMalformedDefinition)
	}
	if len(doc.Variants) > 0 && len(doc.Multipart) > 0 {
		return nil, fmt.Errorf("%w: blockstate defines both variants and multipart", ErrMalformedDefinition)
	}

	bs := &BlockState{}

	if len(doc.Variants) > 0 {
		bs.Variants = make(map[string][]Variant, len(doc.Variants))
		for key, raw := range doc.Variants {
			if _, err := ParseSelectorKey(key); err != nil {
				return nil, err
			}
			variants, err := decodeVariantList(raw)
			if err != nil {
				return nil, fmt.Errorf("variants[%q]: %w", key, err)
			}
			bs.Variants[key] = variants
		}
	}

	for i, jc := range doc.Multipart {
		variants, err := decodeVariantList(jc.Apply)
		if err != nil {
			return nil, fmt.Errorf("multipart[%d].apply: %w", i, err)
		}
		mc := MultipartCase{Apply: variants}
		if len(jc.When) > 0 {
			cond, err := decodeCondition(jc.When)
			if err != nil {
				return nil, fmt.Errorf("multipart[%d].when: %w", i, err)
			}
			mc.When = cond
		}
		bs.Multipart = append(bs.Multipart, mc)
	}

	return bs, nil
}

// decodeVariantList accepts both the single-variant object and the weighted
// candidate array forms.
func decodeVariantList(raw json.RawMessage) ([]Variant, error) {
	var list []jsonVariant
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDefinition, err)
		}
	} else {
		var single jsonVariant
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDefinition, err)
		}
		list = []jsonVariant{single}
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: empty variant list", ErrMalformedDefinition)
	}

	out := make([]Variant, 0, len(list))
	for _, jv := range list {
		v := Variant{Model: jv.Model, X: jv.X, Y: jv.Y, Z: jv.Z, UVLock: jv.UVLock, Weight: 1}
		if jv.Model == "" {
			return nil, fmt.Errorf("%w: variant missing model", ErrMalformedDefinition)
		}
		if !validQuarterTurn(v.X) || !validQuarterTurn(v.Y) || !validQuarterTurn(v.Z) {
			return nil, fmt.Errorf("%w: variant rotation x=%d y=%d z=%d", ErrMalformedDefinition, v.X, v.Y, v.Z)
		}
		if jv.Weight != nil {
			if *jv.Weight < 1 {
				return nil, fmt.Errorf("%w: variant weight %d", ErrMalformedDefinition, *jv.Weight)
			}
			v.Weight = *jv.Weight
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeCondition(raw json.RawMessage) (*Condition, error) {
	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDefinition, err)
	}

	if or, ok := keyed["OR"]; ok {
		subs, err := decodeConditionList(or)
		if err != nil {
			return nil, err
		}
		return &Condition{Or: subs}, nil
	}
	if and, ok := keyed["AND"]; ok {
		subs, err := decodeConditionList(and)
		if err != nil {
			return nil, err
		}
		return &Condition{And: subs}, nil
	}

	match := make(map[string]string, len(keyed))
	for key, val := range keyed {
		var s string
		if err := json.Unmarshal(val, &s); err != nil {
			// Property values may be bare bools or numbers in JSON.
			var v any
			if err := json.Unmarshal(val, &v); err != nil {
				return nil, fmt.Errorf("%w: condition value for %q", ErrMalformedDefinition, key)
			}
			s = fmt.Sprintf("%v", v)
		}
		match[key] = s
	}
	return &Condition{Match: match}, nil
}

func decodeConditionList(raw json.RawMessage) ([]Condition, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDefinition, err)
	}
	out := make([]Condition, 0, len(items))
	for _, item := range items {
		c, err := decodeCondition(item)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

func validQuarterTurn(deg int) bool {
	switch deg {
	case 0, 90, 180, 270:
		return true
	}
	return false
}
