// Package flatten turns nested worker-pool configuration into flat
// CSV-friendly maps with underscore-joined keys.
package flatten

import "fmt"

// Flatten flattens nested maps in m into a single-level map. Keys of
// nested maps are joined to their parent key with "_". With expandLists,
// list elements are expanded with an index suffix (disks_0_...), and
// map elements recurse; without it, lists are carried through untouched.
// Two source paths collapsing to the same flat key is an error.
func Flatten(m map[string]any, prefix string, expandLists bool) (map[string]any, error) {
	out := map[string]any{}
	if err := walk(m, prefix, expandLists, out); err != nil {
		return nil, err
	}
	return out, nil
}

func walk(m map[string]any, prefix string, expandLists bool, out map[string]any) error {
	pre := ""
	if prefix != "" {
		pre = prefix + "_"
	}

	for key, val := range m {
		switch v := val.(type) {
		case map[string]any:
			nested, err := Flatten(v, key, expandLists)
			if err != nil {
				return err
			}
			for nkey, nval := range nested {
				if err := put(out, pre+nkey, nval); err != nil {
					return err
				}
			}
		case []any:
			if !expandLists {
				if err := put(out, pre+key, v); err != nil {
					return err
				}
				continue
			}
			for pos, item := range v {
				subkey := fmt.Sprintf("%s_%d", key, pos)
				if nested, ok := item.(map[string]any); ok {
					flat, err := Flatten(nested, subkey, expandLists)
					if err != nil {
						return err
					}
					for nkey, nval := range flat {
						if err := put(out, pre+nkey, nval); err != nil {
							return err
						}
					}
				} else if err := put(out, pre+subkey, item); err != nil {
					return err
				}
			}
		default:
			if err := put(out, pre+key, val); err != nil {
				return err
			}
		}
	}
	return nil
}

func put(out map[string]any, key string, val any) error {
	if _, exists := out[key]; exists {
		return fmt.Errorf("flatten: duplicate key %q", key)
	}
	out[key] = val
	return nil
}
