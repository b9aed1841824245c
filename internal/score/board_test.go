package score

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func newTestBoard() (*Board, *MemoryStore) {
	store := NewMemoryStore()
	return NewBoard(store, log.New(io.Discard)), store
}

func TestSaveLastWriteWins(t *testing.T) {
	b, _ := newTestBoard()

	if err := b.Save("ana", 10); err != nil {
		t.Fatal(err)
	}
	if err := b.Save("ana", 3); err != nil {
		t.Fatal(err)
	}

	got := b.Load()
	if len(got) != 1 || got[0] != (Entry{Name: "ana", Score: 3}) {
		t.Errorf("Load() = %v, want [{ana 3}]", got)
	}
}

func TestSaveSortsDescending(t *testing.T) {
	b, _ := newTestBoard()
	for _, e := range []Entry{{"a", 5}, {"b", 20}, {"c", 12}} {
		if err := b.Save(e.Name, e.Score); err != nil {
			t.Fatal(err)
		}
	}

	got := b.Load()
	want := []Entry{{"b", 20}, {"c", 12}, {"a", 5}}
	if len(got) != len(want) {
		t.Fatalf("Load() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Load()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSaveTruncatesToMaxEntries(t *testing.T) {
	b, _ := newTestBoard()
	for i := 1; i <= 12; i++ {
		if err := b.Save(fmt.Sprintf("p%d", i), i); err != nil {
			t.Fatal(err)
		}
	}

	got := b.Load()
	if len(got) != MaxEntries {
		t.Fatalf("len(Load()) = %d, want %d", len(got), MaxEntries)
	}
	if got[0].Score != 12 || got[len(got)-1].Score != 3 {
		t.Errorf("board spans %d..%d, want 12..3", got[0].Score, got[len(got)-1].Score)
	}
}

func TestSaveIgnoresZeroScoreAndEmptyName(t *testing.T) {
	b, store := newTestBoard()

	if err := b.Save("ana", 0); err != nil {
		t.Fatal(err)
	}
	if err := b.Save("", 7); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Load(StorageKey); !errors.Is(err, ErrNotFound) {
		t.Errorf("store was written to: err = %v", err)
	}
}

func TestLoadCorruptDataIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"broken syntax", "[unterminated"},
		{"wrong shape", "just a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, store := newTestBoard()
			store.Save(StorageKey, []byte(tt.data))

			if got := b.Load(); len(got) != 0 {
				t.Errorf("Load() = %v, want empty", got)
			}
			// A corrupt board is replaced by the next save.
			if err := b.Save("ana", 4); err != nil {
				t.Fatal(err)
			}
			if got := b.Load(); len(got) != 1 {
				t.Errorf("Load() after save = %v, want one entry", got)
			}
		})
	}
}

func TestTop(t *testing.T) {
	b, _ := newTestBoard()
	for i := 1; i <= 8; i++ {
		b.Save(fmt.Sprintf("p%d", i), i*10)
	}

	got := b.Top(5)
	if len(got) != 5 {
		t.Fatalf("len(Top(5)) = %d, want 5", len(got))
	}
	if got[0].Name != "p8" || got[4].Name != "p4" {
		t.Errorf("Top(5) = %v", got)
	}
	if Rank(got, "p6") != 3 {
		t.Errorf("Rank(p6) = %d, want 3", Rank(got, "p6"))
	}
	if Rank(got, "p1") != 0 {
		t.Errorf("Rank(p1) = %d, want 0", Rank(got, "p1"))
	}
}

type failingStore struct{}

func (failingStore) Load(string) ([]byte, error) { return nil, errors.New("disk gone") }
func (failingStore) Save(string, []byte) error   { return errors.New("disk gone") }

// slowStore holds every Save until release is closed and records any
// Load that happens while a Save is in flight.
type slowStore struct {
	*MemoryStore
	saving  atomic.Bool
	overlap atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func (s *slowStore) Load(key string) ([]byte, error) {
	if s.saving.Load() {
		s.overlap.Store(true)
	}
	return s.MemoryStore.Load(key)
}

func (s *slowStore) Save(key string, data []byte) error {
	s.saving.Store(true)
	defer s.saving.Store(false)
	close(s.entered)
	<-s.release
	return s.MemoryStore.Save(key, data)
}

func TestTopWaitsForSave(t *testing.T) {
	store := &slowStore{
		MemoryStore: NewMemoryStore(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	b := NewBoard(store, log.New(io.Discard))

	saved := make(chan error, 1)
	go func() { saved <- b.Save("ana", 7) }()
	<-store.entered

	read := make(chan []Entry, 1)
	go func() { read <- b.Top(MaxEntries) }()

	select {
	case got := <-read:
		t.Fatalf("Top returned %v while a save was in flight", got)
	case <-time.After(20 * time.Millisecond):
	}
	close(store.release)

	if err := <-saved; err != nil {
		t.Fatal(err)
	}
	got := <-read
	if len(got) != 1 || got[0] != (Entry{Name: "ana", Score: 7}) {
		t.Errorf("Top() = %v, want [{ana 7}]", got)
	}
	if store.overlap.Load() {
		t.Error("board was read during a save")
	}
}

func TestStoreErrors(t *testing.T) {
	b := NewBoard(failingStore{}, log.New(io.Discard))

	if got := b.Load(); len(got) != 0 {
		t.Errorf("Load() = %v, want empty", got)
	}
	if err := b.Save("ana", 1); err == nil {
		t.Error("Save() should report the store failure")
	}
}

func TestGdataStore(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)

	store, err := OpenGdataStore("flappy_test")
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}

	if _, err := store.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) err = %v, want ErrNotFound", err)
	}

	b := NewBoard(store, log.New(io.Discard))
	if err := b.Save("ana", 9); err != nil {
		t.Fatal(err)
	}
	got := b.Load()
	if len(got) != 1 || got[0] != (Entry{Name: "ana", Score: 9}) {
		t.Errorf("Load() = %v, want [{ana 9}]", got)
	}
}
