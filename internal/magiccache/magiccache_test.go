package magiccache

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "magiccache-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	c, err := Open(filepath.Join(tmpDir, "db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	return c
}

func TestGetMiss(t *testing.T) {
	c := openTestCache(t)

	_, found, err := c.Get(0, false, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Fatal("expected cache miss on empty database")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	c := openTestCache(t)

	want := Entry{Magic: 0x123456789ABCDEF0, Shift: 52}
	if err := c.Put(12, true, 0xDEADBEEF, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, found, err := c.Get(12, true, 0xDEADBEEF)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("expected cache hit after Put")
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestKeysDistinguishRookVsBishop(t *testing.T) {
	c := openTestCache(t)

	bishop := Entry{Magic: 1, Shift: 58}
	rook := Entry{Magic: 2, Shift: 52}

	if err := c.Put(27, false, 42, bishop); err != nil {
		t.Fatalf("Put bishop: %v", err)
	}
	if err := c.Put(27, true, 42, rook); err != nil {
		t.Fatalf("Put rook: %v", err)
	}

	gotBishop, _, err := c.Get(27, false, 42)
	if err != nil {
		t.Fatalf("Get bishop: %v", err)
	}
	gotRook, _, err := c.Get(27, true, 42)
	if err != nil {
		t.Fatalf("Get rook: %v", err)
	}

	if gotBishop == gotRook {
		t.Error("bishop and rook entries collided on the same square")
	}
}
