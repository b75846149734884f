package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// fakeAdapter satisfies Adapter for catalog tests without downloading
// anything.
type fakeAdapter struct {
	id, bundleID, desc, url, license string
}

func (f *fakeAdapter) ID() string          { return f.id }
func (f *fakeAdapter) BundleID() string    { return f.bundleID }
func (f *fakeAdapter) Description() string { return f.desc }
func (f *fakeAdapter) DefaultURL() string  { return f.url }
func (f *fakeAdapter) License() string     { return f.license }
func (f *fakeAdapter) Import(context.Context, string, string) (uint64, error) {
	return 0, nil
}

func patrologia() *fakeAdapter {
	return &fakeAdapter{"patrologia", "latin-pl", "Patrologia Latina e-texts", "https://corpora.example/pl.zip", "Public domain"}
}

func monumenta() *fakeAdapter {
	return &fakeAdapter{"mgh", "latin-mgh", "Monumenta Germaniae Historica", "https://corpora.example/mgh.zip", "CC BY-NC 4.0"}
}

func newTestDB(t *testing.T) *SourceDB {
	t.Helper()
	sdb, err := OpenSourceDB(filepath.Join(t.TempDir(), "sources.db"))
	if err != nil {
		t.Fatalf("OpenSourceDB: %v", err)
	}
	t.Cleanup(func() { sdb.Close() })
	return sdb
}

func TestOpenSourceDB_CreatesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.db")

	sdb, err := OpenSourceDB(path)
	if err != nil {
		t.Fatalf("OpenSourceDB: %v", err)
	}
	defer sdb.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("db file not created: %v", err)
	}

	// A fresh catalog lists nothing but must not error.
	sources, err := sdb.ListSources()
	if err != nil {
		t.Fatalf("ListSources on empty db: %v", err)
	}
	if len(sources) != 0 {
		t.Fatalf("ListSources on empty db = %d rows, want 0", len(sources))
	}
}

func TestSeedAndGetURL(t *testing.T) {
	sdb := newTestDB(t)

	if err := sdb.Seed([]Adapter{patrologia(), monumenta()}); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	url, err := sdb.GetURL("patrologia")
	if err != nil {
		t.Fatalf("GetURL: %v", err)
	}
	if url != "https://corpora.example/pl.zip" {
		t.Fatalf("GetURL = %q, want the seeded default", url)
	}

	// Re-seeding with a different default must not clobber the row.
	changed := patrologia()
	changed.url = "https://corpora.example/pl-v2.zip"
	if err := sdb.Seed([]Adapter{changed}); err != nil {
		t.Fatalf("Seed again: %v", err)
	}

	url, err = sdb.GetURL("patrologia")
	if err != nil {
		t.Fatalf("GetURL after re-seed: %v", err)
	}
	if url != "https://corpora.example/pl.zip" {
		t.Fatalf("re-seed overwrote url: got %q", url)
	}
}

func TestSetURL(t *testing.T) {
	sdb := newTestDB(t)

	if err := sdb.Seed([]Adapter{patrologia()}); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	if err := sdb.SetURL("patrologia", "https://mirror.example/pl.zip"); err != nil {
		t.Fatalf("SetURL: %v", err)
	}

	url, err := sdb.GetURL("patrologia")
	if err != nil {
		t.Fatalf("GetURL: %v", err)
	}
	if url != "https://mirror.example/pl.zip" {
		t.Fatalf("GetURL = %q, want the mirror url", url)
	}
}

func TestSetURL_NotFound(t *testing.T) {
	sdb := newTestDB(t)

	if err := sdb.SetURL("no-such-adapter", "https://corpora.example/x.zip"); err == nil {
		t.Fatal("SetURL on unknown adapter: expected error")
	}
}

func TestRecordImport(t *testing.T) {
	sdb := newTestDB(t)

	if err := sdb.Seed([]Adapter{patrologia()}); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	if err := sdb.RecordImport("patrologia", 842000, ""); err != nil {
		t.Fatalf("RecordImport: %v", err)
	}

	sources, err := sdb.ListSources()
	if err != nil {
		t.Fatalf("ListSources: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("ListSources = %d rows, want 1", len(sources))
	}
	src := sources[0]
	if src.LastWords == nil || *src.LastWords != 842000 {
		t.Fatalf("LastWords = %v, want 842000", src.LastWords)
	}
	if src.LastImport == nil || *src.LastImport == 0 {
		t.Fatal("LastImport not recorded")
	}
	if src.LastError != nil {
		t.Fatalf("LastError = %q, want none", *src.LastError)
	}

	// A failed run keeps the row and records the message.
	if err := sdb.RecordImport("patrologia", 0, "download timed out"); err != nil {
		t.Fatalf("RecordImport with error: %v", err)
	}

	sources, _ = sdb.ListSources()
	src = sources[0]
	if src.LastWords == nil || *src.LastWords != 0 {
		t.Fatalf("LastWords after failure = %v, want 0", src.LastWords)
	}
	if src.LastError == nil || *src.LastError != "download timed out" {
		t.Fatalf("LastError = %v, want 'download timed out'", src.LastError)
	}
}

func TestListSources_Order(t *testing.T) {
	sdb := newTestDB(t)

	if err := sdb.Seed([]Adapter{patrologia(), monumenta()}); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	sources, err := sdb.ListSources()
	if err != nil {
		t.Fatalf("ListSources: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("ListSources = %d rows, want 2", len(sources))
	}
	if sources[0].AdapterID != "mgh" || sources[1].AdapterID != "patrologia" {
		t.Fatalf("order = %s, %s; want mgh, patrologia", sources[0].AdapterID, sources[1].AdapterID)
	}
	if sources[0].BundleID != "latin-mgh" {
		t.Fatalf("BundleID = %q, want latin-mgh", sources[0].BundleID)
	}
}
