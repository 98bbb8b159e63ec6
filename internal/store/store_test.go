package store

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

// backends returns a named constructor for every Store implementation.
// The conformance tests below run against each of them.
func backends(t *testing.T) map[string]func(t *testing.T) Store {
	t.Helper()
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store {
			return NewMemory()
		},
		"sqlite": func(t *testing.T) Store {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "recall.db"))
			if err != nil {
				t.Fatalf("OpenSQLite() failed: %v", err)
			}
			t.Cleanup(func() { s.Close() })
			return s
		},
		"redis": func(t *testing.T) Store {
			mr := miniredis.RunT(t)
			s, err := OpenRedis(context.Background(), RedisConfig{Addr: mr.Addr()})
			if err != nil {
				t.Fatalf("OpenRedis() failed: %v", err)
			}
			t.Cleanup(func() { s.Close() })
			return s
		},
	}
}

func TestStore_SetGet(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()

			if err := s.Set(ctx, "k", []byte("hello")); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}

			got, err := s.Get(ctx, "k")
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			if !bytes.Equal(got, []byte("hello")) {
				t.Errorf("Get() = %q, want %q", got, "hello")
			}

			// Overwrite
			if err := s.Set(ctx, "k", []byte("world")); err != nil {
				t.Fatalf("Set() overwrite failed: %v", err)
			}
			got, err = s.Get(ctx, "k")
			if err != nil {
				t.Fatalf("Get() after overwrite failed: %v", err)
			}
			if !bytes.Equal(got, []byte("world")) {
				t.Errorf("Get() = %q, want %q", got, "world")
			}
		})
	}
}

func TestStore_GetMissingKey(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)

			_, err := s.Get(context.Background(), "never-stored")
			if err != ErrNotFound {
				t.Errorf("Get() on missing key = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStore_IncrStartsAtOne(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()

			for want := int64(1); want <= 5; want++ {
				got, err := s.Incr(ctx, "counter")
				if err != nil {
					t.Fatalf("Incr() failed: %v", err)
				}
				if got != want {
					t.Errorf("Incr() = %d, want %d", got, want)
				}
			}
		})
	}
}

func TestStore_CounterReadsBackThroughGet(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()

			for i := 0; i < 3; i++ {
				if _, err := s.Incr(ctx, "counter"); err != nil {
					t.Fatalf("Incr() failed: %v", err)
				}
			}

			got, err := s.Get(ctx, "counter")
			if err != nil {
				t.Fatalf("Get() on counter failed: %v", err)
			}
			if string(got) != "3" {
				t.Errorf("Get() on counter = %q, want %q", got, "3")
			}
		})
	}
}

func TestStore_RPushLRange(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()

			entries := []string{"a", "b", "c", "d"}
			for _, e := range entries {
				if err := s.RPush(ctx, "list", []byte(e)); err != nil {
					t.Fatalf("RPush(%q) failed: %v", e, err)
				}
			}

			// Full range with the Redis -1 idiom.
			got, err := s.LRange(ctx, "list", 0, -1)
			if err != nil {
				t.Fatalf("LRange(0, -1) failed: %v", err)
			}
			if len(got) != len(entries) {
				t.Fatalf("LRange(0, -1) returned %d entries, want %d", len(got), len(entries))
			}
			for i, e := range entries {
				if string(got[i]) != e {
					t.Errorf("LRange(0, -1)[%d] = %q, want %q", i, got[i], e)
				}
			}

			// Interior window.
			got, err = s.LRange(ctx, "list", 1, 2)
			if err != nil {
				t.Fatalf("LRange(1, 2) failed: %v", err)
			}
			if len(got) != 2 || string(got[0]) != "b" || string(got[1]) != "c" {
				t.Errorf("LRange(1, 2) = %q, want [b c]", got)
			}

			// Negative start.
			got, err = s.LRange(ctx, "list", -2, -1)
			if err != nil {
				t.Fatalf("LRange(-2, -1) failed: %v", err)
			}
			if len(got) != 2 || string(got[0]) != "c" || string(got[1]) != "d" {
				t.Errorf("LRange(-2, -1) = %q, want [c d]", got)
			}

			// Stop past the end clamps.
			got, err = s.LRange(ctx, "list", 2, 100)
			if err != nil {
				t.Fatalf("LRange(2, 100) failed: %v", err)
			}
			if len(got) != 2 || string(got[0]) != "c" || string(got[1]) != "d" {
				t.Errorf("LRange(2, 100) = %q, want [c d]", got)
			}
		})
	}
}

func TestStore_LRangeMissingList(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)

			got, err := s.LRange(context.Background(), "no-such-list", 0, -1)
			if err != nil {
				t.Fatalf("LRange() on missing list failed: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("LRange() on missing list returned %d entries, want 0", len(got))
			}
		})
	}
}

func TestStore_FlushAllErasesEverything(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()

			if err := s.Set(ctx, "k", []byte("v")); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}
			if _, err := s.Incr(ctx, "counter"); err != nil {
				t.Fatalf("Incr() failed: %v", err)
			}
			if err := s.RPush(ctx, "list", []byte("e")); err != nil {
				t.Fatalf("RPush() failed: %v", err)
			}

			if err := s.FlushAll(ctx); err != nil {
				t.Fatalf("FlushAll() failed: %v", err)
			}

			if _, err := s.Get(ctx, "k"); err != ErrNotFound {
				t.Errorf("Get() after flush = %v, want ErrNotFound", err)
			}
			entries, err := s.LRange(ctx, "list", 0, -1)
			if err != nil {
				t.Fatalf("LRange() after flush failed: %v", err)
			}
			if len(entries) != 0 {
				t.Errorf("LRange() after flush returned %d entries, want 0", len(entries))
			}

			// Counter restarts from zero.
			n, err := s.Incr(ctx, "counter")
			if err != nil {
				t.Fatalf("Incr() after flush failed: %v", err)
			}
			if n != 1 {
				t.Errorf("Incr() after flush = %d, want 1", n)
			}
		})
	}
}

func TestStore_EmptyValueIsNotMissing(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()

			if err := s.Set(ctx, "empty", []byte{}); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}

			got, err := s.Get(ctx, "empty")
			if err != nil {
				t.Fatalf("Get() on empty value = %v, want nil error", err)
			}
			if len(got) != 0 {
				t.Errorf("Get() on empty value = %q, want empty", got)
			}
		})
	}
}

func TestClampRange(t *testing.T) {
	tests := []struct {
		name        string
		start, stop int64
		n           int64
		lo, hi      int64
		ok          bool
	}{
		{"full range", 0, -1, 4, 0, 4, true},
		{"interior", 1, 2, 4, 1, 3, true},
		{"negative start", -2, -1, 4, 2, 4, true},
		{"stop clamped", 2, 100, 4, 2, 4, true},
		{"start past end", 5, 10, 4, 0, 0, false},
		{"inverted", 3, 1, 4, 0, 0, false},
		{"empty list", 0, -1, 0, 0, 0, false},
		{"deep negative start", -100, -1, 4, 0, 4, true},
		{"negative stop before start", 2, -4, 4, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := clampRange(tt.start, tt.stop, tt.n)
			if ok != tt.ok {
				t.Fatalf("clampRange(%d, %d, %d) ok = %v, want %v", tt.start, tt.stop, tt.n, ok, tt.ok)
			}
			if ok && (lo != tt.lo || hi != tt.hi) {
				t.Errorf("clampRange(%d, %d, %d) = [%d, %d), want [%d, %d)", tt.start, tt.stop, tt.n, lo, hi, tt.lo, tt.hi)
			}
		})
	}
}
