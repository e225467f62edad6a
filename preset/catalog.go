package preset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-growl/growl"
)

// Category groups factory presets.
type Category int

const (
	CategoryBigCats Category = iota
	CategoryCanines
	CategoryBears
	CategoryMythical
	CategorySciFi
)

var categoryNames = [...]string{"BigCats", "Canines", "Bears", "Mythical", "SciFi"}

// Categories lists every category in catalog order.
func Categories() []Category {
	return []Category{CategoryBigCats, CategoryCanines, CategoryBears, CategoryMythical, CategorySciFi}
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory accepts names like "bigcats", "Big Cats" or "sci-fi".
func ParseCategory(name string) (Category, error) {
	key := normalizeKey(name)
	for i, n := range categoryNames {
		if normalizeKey(n) == key {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", name)
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// Count is the number of factory presets.
func Count() int { return len(factoryRows) }

// Factory returns fresh copies of every factory preset in program order.
func Factory() []*growl.AcousticParams {
	out := make([]*growl.AcousticParams, len(factoryRows))
	for i, r := range factoryRows {
		out[i] = r.params()
	}
	return out
}

// Get returns a copy of factory preset index.
func Get(index int) (*growl.AcousticParams, error) {
	if index < 0 || index >= len(factoryRows) {
		return nil, fmt.Errorf("%w: index %d outside [0,%d)", ErrUnknownPreset, index, len(factoryRows))
	}
	return factoryRows[index].params(), nil
}

// CategoryOf returns the category of factory preset index.
func CategoryOf(index int) (Category, error) {
	if index < 0 || index >= len(factoryRows) {
		return 0, fmt.Errorf("%w: index %d outside [0,%d)", ErrUnknownPreset, index, len(factoryRows))
	}
	return factoryRows[index].category, nil
}

// FindByAnimal returns the indices of presets for an animal (case-insensitive).
func FindByAnimal(animal string) []int {
	var out []int
	for i, r := range factoryRows {
		if strings.EqualFold(r.animal, strings.TrimSpace(animal)) {
			out = append(out, i)
		}
	}
	return out
}

// FindByCategory returns the indices of presets in c.
func FindByCategory(c Category) []int {
	var out []int
	for i, r := range factoryRows {
		if r.category == c {
			out = append(out, i)
		}
	}
	return out
}

// FindByName returns the index of the preset called name (case-insensitive).
func FindByName(name string) (int, error) {
	key := normalizeKey(name)
	for i, r := range factoryRows {
		if normalizeKey(r.name) == key {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// Lookup resolves a reference given as an index, a preset name or an
// animal name, in that order. An animal with several presets resolves to
// its first one.
func Lookup(ref string) (*growl.AcousticParams, error) {
	if idx, err := strconv.Atoi(strings.TrimSpace(ref)); err == nil {
		return Get(idx)
	}
	if idx, err := FindByName(ref); err == nil {
		return Get(idx)
	}
	if hits := FindByAnimal(ref); len(hits) > 0 {
		return Get(hits[0])
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, ref)
}
