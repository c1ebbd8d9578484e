package config

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-fpcam/pkg/camera"
	"gopkg.in/yaml.v3"
)

// Vec3 is a three component vector written as a YAML sequence.
type Vec3 mgl32.Vec3

// UnmarshalYAML reads exactly three components.
func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	var comps []float32
	if err := value.Decode(&comps); err != nil {
		return err
	}
	if len(comps) != 3 {
		return fmt.Errorf("line %d: vector needs 3 components, got %d", value.Line, len(comps))
	}
	copy(v[:], comps)
	return nil
}

// MarshalYAML writes the vector in flow style.
func (v Vec3) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range v {
		var item yaml.Node
		if err := item.Encode(c); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &item)
	}
	return node, nil
}

// Button is a mouse button binding written by name: left, right, middle or none.
type Button camera.MouseButton

var buttonNames = map[string]camera.MouseButton{
	"none":   camera.MouseButtonNone,
	"left":   camera.MouseButtonLeft,
	"right":  camera.MouseButtonRight,
	"middle": camera.MouseButtonMiddle,
}

// ParseButton looks up a mouse button by name, ignoring case.
func ParseButton(name string) (Button, error) {
	b, ok := buttonNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Button(camera.MouseButtonNone), fmt.Errorf("unknown mouse button %q", name)
	}
	return Button(b), nil
}

// String returns the name used in settings files.
func (b Button) String() string {
	for name, v := range buttonNames {
		if v == camera.MouseButton(b) {
			return name
		}
	}
	return fmt.Sprintf("button(%d)", int(b))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Button) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: mouse button must be a string", value.Line)
	}
	parsed, err := ParseButton(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*b = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (b Button) MarshalYAML() (any, error) {
	return b.String(), nil
}

// Key is a keyboard binding written by name: arrow names (up, down, left,
// right), a single letter or digit, space, escape or none.
type Key camera.Key

var keyNames = map[string]camera.Key{
	"none":   camera.KeyUnknown,
	"space":  camera.KeySpace,
	"escape": camera.KeyEscape,
	"up":     camera.KeyUp,
	"down":   camera.KeyDown,
	"left":   camera.KeyLeft,
	"right":  camera.KeyRight,
}

// ParseKey looks up a key by name, ignoring case.
func ParseKey(name string) (Key, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNames[s]; ok {
		return Key(k), nil
	}
	if len(s) == 1 {
		switch c := s[0]; {
		case c >= 'a' && c <= 'z':
			return Key(camera.KeyA + camera.Key(c-'a')), nil
		case c >= '0' && c <= '9':
			return Key(camera.Key0 + camera.Key(c-'0')), nil
		}
	}
	return Key(camera.KeyUnknown), fmt.Errorf("unknown key %q", name)
}

// String returns the name used in settings files.
func (k Key) String() string {
	ck := camera.Key(k)
	switch {
	case ck >= camera.KeyA && ck <= camera.KeyZ:
		return string(rune('a' + int(ck-camera.KeyA)))
	case ck >= camera.Key0 && ck <= camera.Key9:
		return string(rune('0' + int(ck-camera.Key0)))
	}
	for name, v := range keyNames {
		if v == ck {
			return name
		}
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *Key) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: key must be a string", value.Line)
	}
	parsed, err := ParseKey(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*k = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (k Key) MarshalYAML() (any, error) {
	return k.String(), nil
}
