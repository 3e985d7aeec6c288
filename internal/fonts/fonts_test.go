package fonts

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dshills/textcutter/internal/richtext"
)

type countingLoader struct {
	mu      sync.Mutex
	calls   map[Key]int
	missing map[Key]bool
}

func newCountingLoader(missing ...Key) *countingLoader {
	l := &countingLoader{calls: make(map[Key]int), missing: make(map[Key]bool)}
	for _, k := range missing {
		l.missing[k] = true
	}
	return l
}

func (l *countingLoader) LoadFont(_ context.Context, k Key) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls[k]++
	if l.missing[k] {
		return errors.New("not installed")
	}
	return nil
}

func mixedFontBuffer() richtext.Buffer {
	inter := richtext.DefaultAttributes()
	inter.FontName = richtext.FontName{Family: "Inter", Style: "Bold"}
	return richtext.Buffer{
		Text: "abcd",
		Ranges: []richtext.FormattingRange{
			{Start: 0, End: 1, Attributes: richtext.DefaultAttributes()},
			{Start: 1, End: 3, Attributes: inter},
			{Start: 3, End: 4, Attributes: richtext.DefaultAttributes()},
		},
	}
}

func TestCollectPerCharacter(t *testing.T) {
	b := mixedFontBuffer()

	agg, _ := b.StyleRange(0, 4)
	if !agg.IsMixed(richtext.FieldFontName) {
		t.Fatal("expected aggregate font to be mixed")
	}

	s, err := Collect(b, 0, 4)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	want := []Key{{"Roboto", "Regular"}, {"Inter", "Bold"}}
	got := s.Keys()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestCollectSubSpan(t *testing.T) {
	s, err := Collect(mixedFontBuffer(), 1, 3)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if s.Len() != 1 || !s.Has(Key{"Inter", "Bold"}) {
		t.Errorf("expected only Inter Bold, got %v", s.Keys())
	}
}

func TestCollectRanges(t *testing.T) {
	s := CollectRanges(mixedFontBuffer().Ranges)
	if s.Len() != 2 {
		t.Errorf("expected 2 fonts, got %v", s.Keys())
	}
}

func TestSetUnion(t *testing.T) {
	a := NewSet(Key{"A", "1"}, Key{"B", "1"})
	b := NewSet(Key{"B", "1"}, Key{"C", "1"})
	a.Union(b)
	if a.Len() != 3 {
		t.Errorf("expected 3 keys, got %v", a.Keys())
	}
	var zero Set
	if zero.Has(Key{"A", "1"}) {
		t.Error("zero set should be empty")
	}
	if !zero.Add(Key{"A", "1"}) || zero.Add(Key{"A", "1"}) {
		t.Error("expected first add true and second false")
	}
}

func TestEnsureLoadedOncePerKey(t *testing.T) {
	l := newCountingLoader()
	s := NewScheduler(l)
	keys := NewSet(Key{"Roboto", "Regular"}, Key{"Inter", "Bold"})

	for i := 0; i < 3; i++ {
		if err := s.EnsureLoaded(context.Background(), keys); err != nil {
			t.Fatalf("ensure loaded failed: %v", err)
		}
	}
	for _, k := range keys.Keys() {
		if l.calls[k] != 1 {
			t.Errorf("expected 1 load of %v, got %d", k, l.calls[k])
		}
		if !s.IsLoaded(k) {
			t.Errorf("expected %v to be loaded", k)
		}
	}
}

func TestEnsureLoadedFailure(t *testing.T) {
	missing := Key{"Comic", "Sans"}
	s := NewScheduler(newCountingLoader(missing), WithMaxConcurrent(1))

	err := s.EnsureLoaded(context.Background(), NewSet(Key{"Roboto", "Regular"}, missing))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	var ue *UnavailableError
	if !errors.As(err, &ue) || ue.Key != missing {
		t.Errorf("expected UnavailableError for %v, got %v", missing, err)
	}
	if s.IsLoaded(missing) {
		t.Error("failed font must not be cached")
	}
}

func TestEnsureLoadedEmpty(t *testing.T) {
	s := NewScheduler(LoaderFunc(func(context.Context, Key) error {
		t.Error("loader should not be called")
		return nil
	}))
	if err := s.EnsureLoaded(context.Background(), nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := s.EnsureLoaded(context.Background(), &Set{}); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}
