package milsym

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/esimov/milsym/utils"
)

// Keys recognized by the renderer and the service.
const (
	ShowIcon   = "showIcon"
	ShowFrame  = "showFrame"
	ShowFill   = "showFill"
	FillColor  = "fillColor"
	IconColor  = "iconColor"
	FrameColor = "frameColor"
	Size       = "size"
)

// Options is an insertion ordered attribute store used to pass the rendering
// options. It is not safe for concurrent mutation: build one per render
// request. A nil *Options is valid for reading and holds no keys.
type Options struct {
	keys   []string
	values map[string]any
}

// NewOptions creates an empty attribute store.
func NewOptions() *Options {
	return &Options{values: make(map[string]any)}
}

// Set adds a key/value pair, replacing the value of an existing key while
// keeping its position. A nil value removes the key.
// Set panics on a nil receiver, create the store with NewOptions.
func (o *Options) Set(key string, value any) *Options {
	if value == nil {
		o.Remove(key)
		return o
	}
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
	return o
}

// Get returns the value stored for key.
func (o *Options) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has indicates whether key is in the store.
func (o *Options) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Remove deletes key from the store and returns its previous value.
func (o *Options) Remove(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	if !ok {
		return nil, false
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Merge copies every entry of other into o, replacing existing keys.
// A nil other is a no-op, a nil o panics unless other is empty.
func (o *Options) Merge(other *Options) *Options {
	for _, k := range other.Keys() {
		o.Set(k, other.values[k])
	}
	return o
}

// Keys returns the keys in insertion order.
func (o *Options) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of entries.
func (o *Options) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Copy returns a shallow copy: keys and values are not cloned.
func (o *Options) Copy() *Options {
	return NewOptions().Merge(o)
}

// Clear removes every entry. It panics on a nil receiver.
func (o *Options) Clear() *Options {
	o.keys = nil
	o.values = make(map[string]any)
	return o
}

// String returns the value of key in its string form, or def when absent.
func (o *Options) String(key, def string) string {
	v, ok := o.Get(key)
	if !ok {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the value of key as an int, or def when absent or not convertible.
func (o *Options) Int(key string, def int) int {
	v, ok := o.Get(key)
	if !ok {
		return def
	}
	if i, ok := v.(int); ok {
		return i
	}
	i, err := strconv.Atoi(strings.TrimSpace(o.String(key, "")))
	if err != nil {
		return def
	}
	return i
}

// Int64 returns the value of key as an int64, or def when absent or not convertible.
func (o *Options) Int64(key string, def int64) int64 {
	v, ok := o.Get(key)
	if !ok {
		return def
	}
	if i, ok := v.(int64); ok {
		return i
	}
	i, err := strconv.ParseInt(strings.TrimSpace(o.String(key, "")), 10, 64)
	if err != nil {
		return def
	}
	return i
}

// Float64 returns the value of key as a float64, or def when absent or not convertible.
func (o *Options) Float64(key string, def float64) float64 {
	v, ok := o.Get(key)
	if !ok {
		return def
	}
	if f, ok := v.(float64); ok {
		return f
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(o.String(key, "")), 64)
	if err != nil {
		return def
	}
	return f
}

// Bool returns the value of key as a bool, or def when absent or not convertible.
func (o *Options) Bool(key string, def bool) bool {
	v, ok := o.Get(key)
	if !ok {
		return def
	}
	if b, ok := v.(bool); ok {
		return b
	}
	b, err := strconv.ParseBool(strings.TrimSpace(o.String(key, "")))
	if err != nil {
		return def
	}
	return b
}

// Color returns the value of key as a color. Both color.Color values and hex
// strings are accepted. The boolean result is false when the key is absent or
// its value is not a color.
func (o *Options) Color(key string) (color.NRGBA, bool) {
	v, ok := o.Get(key)
	if !ok {
		return color.NRGBA{}, false
	}
	switch c := v.(type) {
	case color.NRGBA:
		return c, true
	case color.Color:
		return utils.ToNRGBA(c), true
	case string:
		nc, err := utils.HexToNRGBA(c)
		if err != nil {
			return color.NRGBA{}, false
		}
		return nc, true
	}
	return color.NRGBA{}, false
}

// Fingerprint returns a deterministic representation of the entries,
// independent of the insertion order, suitable to be used as a cache key.
// Keys and values are quoted and every value is tagged with its type, so
// distinct stores never share a fingerprint.
func (o *Options) Fingerprint() string {
	keys := o.Keys()
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Quote(k))
		sb.WriteByte('=')

		v := o.values[k]
		if c, ok := v.(color.Color); ok {
			sb.WriteString("color:")
			sb.WriteString(strconv.Quote(utils.NRGBAToHex(utils.ToNRGBA(c))))
			continue
		}
		fmt.Fprintf(&sb, "%T:%s", v, strconv.Quote(fmt.Sprint(v)))
	}
	return sb.String()
}
