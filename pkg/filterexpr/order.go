package filterexpr

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// OrderSchema describes ordering defaults and whitelisted keys.
type OrderSchema struct {
	DefaultPrimary     string
	DefaultPrimaryDesc bool
	FallbackKey        string
	FallbackDesc       bool
	Fields             []string
}

// Order is a parsed order_by expression with at most two keys.
type Order struct {
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

// ParseOrderBy parses "key [asc|desc][, key [asc|desc]]" against schema.
func ParseOrderBy(raw string, schema OrderSchema) (Order, error) { //nolint:gocognit,gocyclo // parsing DSL entails validation branches for readability
	if schema.DefaultPrimary == "" {
		return Order{}, errors.New("order schema default primary key required")
	}
	if schema.FallbackKey == "" {
		return Order{}, errors.New("order schema fallback key required")
	}

	if !lo.Contains(schema.Fields, schema.DefaultPrimary) {
		return Order{}, fmt.Errorf("order key %q missing from schema fields", schema.DefaultPrimary)
	}
	if !lo.Contains(schema.Fields, schema.FallbackKey) {
		return Order{}, fmt.Errorf("fallback order key %q missing from schema fields", schema.FallbackKey)
	}

	ord := Order{
		PrimaryKey:    schema.DefaultPrimary,
		PrimaryDesc:   schema.DefaultPrimaryDesc,
		SecondaryKey:  schema.FallbackKey,
		SecondaryDesc: schema.FallbackDesc,
	}

	segments := strings.Split(strings.TrimSpace(raw), ",")
	seen := make(map[string]struct{}, len(segments))
	idx := 0
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}

		parts := strings.Fields(seg)
		key := parts[0]
		if !lo.Contains(schema.Fields, key) {
			return Order{}, fmt.Errorf("field %q cannot be used for ordering", key)
		}

		var desc bool
		switch len(parts) {
		case 1:
		case 2:
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				desc = true
			default:
				return Order{}, fmt.Errorf("invalid direction %q for field %q", parts[1], key)
			}
		default:
			return Order{}, fmt.Errorf("invalid order segment %q", seg)
		}

		if _, dup := seen[key]; dup {
			return Order{}, fmt.Errorf("duplicate order key %q", key)
		}
		seen[key] = struct{}{}

		switch idx {
		case 0:
			ord.PrimaryKey = key
			ord.PrimaryDesc = desc
			ord.SecondaryKey = schema.FallbackKey
			ord.SecondaryDesc = schema.FallbackDesc
		case 1:
			ord.SecondaryKey = key
			ord.SecondaryDesc = desc
		default:
			return Order{}, errors.New("order_by supports at most two keys")
		}
		idx++
	}

	if ord.SecondaryKey == ord.PrimaryKey {
		// fallback duplicates the primary: pick any other key for a stable tie-break
		other, ok := lo.Find(schema.Fields, func(key string) bool { return key != ord.PrimaryKey })
		if !ok {
			return Order{}, errors.New("order schema requires at least two distinct keys for stable ordering")
		}
		ord.SecondaryKey = other
		ord.SecondaryDesc = false
	}

	return ord, nil
}

// Comparator orders two values the way cmp.Compare does.
type Comparator[T any] func(a, b T) int

// Sort stably orders items by ord using the comparator registered for each key.
func Sort[T any](items []T, ord Order, comparators map[string]Comparator[T]) error {
	primary, ok := comparators[ord.PrimaryKey]
	if !ok {
		return fmt.Errorf("no comparator for order key %q", ord.PrimaryKey)
	}
	secondary, ok := comparators[ord.SecondaryKey]
	if !ok {
		return fmt.Errorf("no comparator for order key %q", ord.SecondaryKey)
	}
	slices.SortStableFunc(items, func(a, b T) int {
		if c := directed(primary(a, b), ord.PrimaryDesc); c != 0 {
			return c
		}
		return directed(secondary(a, b), ord.SecondaryDesc)
	})
	return nil
}

func directed(c int, desc bool) int {
	if desc {
		return -c
	}
	return c
}
