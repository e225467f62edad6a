package preset

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-growl/growl"
)

func TestFactoryPresetsValidate(t *testing.T) {
	all := Factory()
	if len(all) != 50 || Count() != 50 {
		t.Fatalf("factory size: got %d / %d, want 50", len(all), Count())
	}
	for i, p := range all {
		if err := Validate(p); err != nil {
			t.Fatalf("preset %d (%s): %v", i, p.PresetName, err)
		}
	}
}

func TestFactoryCategories(t *testing.T) {
	for _, c := range Categories() {
		hits := FindByCategory(c)
		if len(hits) != 10 {
			t.Fatalf("%v: got %d presets, want 10", c, len(hits))
		}
		for _, idx := range hits {
			got, err := CategoryOf(idx)
			if err != nil || got != c {
				t.Fatalf("CategoryOf(%d)=%v,%v want %v", idx, got, err, c)
			}
		}
	}
}

func TestFactoryClampsOutOfRangeRows(t *testing.T) {
	idx, err := FindByName("AI Voice")
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	p, _ := Get(idx)
	if p.SizeFeet != growl.MinSizeFeet {
		t.Fatalf("size: got %v want %v", p.SizeFeet, growl.MinSizeFeet)
	}

	kraken := FindByAnimal("kraken")
	if len(kraken) != 1 {
		t.Fatalf("kraken hits: %v", kraken)
	}
	p, _ = Get(kraken[0])
	if p.Formants[0].Frequency != growl.MinFormantFreq {
		t.Fatalf("kraken formant 0: got %v", p.Formants[0].Frequency)
	}
}

func TestFindByAnimal(t *testing.T) {
	hits := FindByAnimal(" werewolf ")
	if len(hits) != 2 || hits[0] != 17 || hits[1] != 31 {
		t.Fatalf("werewolf hits: got %v want [17 31]", hits)
	}
	if hits := FindByAnimal("unicorn"); len(hits) != 0 {
		t.Fatalf("unexpected hits: %v", hits)
	}
}

func TestGetOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 50} {
		if _, err := Get(idx); !errors.Is(err, ErrUnknownPreset) {
			t.Fatalf("Get(%d): expected ErrUnknownPreset, got %v", idx, err)
		}
	}
}

func TestGetReturnsCopies(t *testing.T) {
	a, _ := Get(0)
	a.Drive = 9
	b, _ := Get(0)
	if b.Drive == 9 {
		t.Fatal("Get should return an independent copy")
	}
}

func TestLookup(t *testing.T) {
	cases := []struct {
		ref  string
		want string
	}{
		{"0", "Lion Roar"},
		{"49", "Quantum Beast"},
		{"wolf howl", "Wolf Howl"},
		{"Grizzly Bear", "Grizzly Growl"},
		{"werewolf", "Werewolf Growl"},
	}
	for _, tc := range cases {
		t.Run(tc.ref, func(t *testing.T) {
			p, err := Lookup(tc.ref)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			if p.PresetName != tc.want {
				t.Fatalf("got %q want %q", p.PresetName, tc.want)
			}
		})
	}
	if _, err := Lookup("nothing"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestParseCategory(t *testing.T) {
	for _, name := range []string{"bigcats", "Big Cats", "sci-fi", "SCI_FI"} {
		if _, err := ParseCategory(name); err != nil {
			t.Fatalf("ParseCategory(%q): %v", name, err)
		}
	}
	if _, err := ParseCategory("fish"); err == nil {
		t.Fatal("expected error")
	}
}
