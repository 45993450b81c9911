package placement

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts either a bare position ("bottom-right") or a
// mapping with position and container.
func (t *Target) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var pos string
		if err := value.Decode(&pos); err != nil {
			return err
		}
		*t = Target{Position: Position(pos)}
		return nil
	case yaml.MappingNode:
		type plain Target
		var out plain
		if err := value.Decode(&out); err != nil {
			return err
		}
		*t = Target(out)
		return nil
	default:
		return fmt.Errorf("line %d: placement target must be a position or a mapping", value.Line)
	}
}

// UnmarshalYAML accepts a single target (scalar or mapping with position)
// or a responsive configuration with default and responsive keys.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode && hasKey(value, "default") {
		type plain Config
		var out plain
		if err := value.Decode(&out); err != nil {
			return err
		}
		*c = Config(out)
		return nil
	}

	var t Target
	if err := value.Decode(&t); err != nil {
		return err
	}
	*c = Single(t)
	return nil
}

func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}
