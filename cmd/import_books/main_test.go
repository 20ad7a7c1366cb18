package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"bookshelf-manager/bookshelf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = `[{"id":1718000000000,"title":"Pride & <Prejudice>","author":"Jane Austen","year":1813,"image":"foto/buku2.png","isComplete":true}]`

type importFixture struct {
	dir    string
	dbPath string
	file   string
}

func newImportFixture(t *testing.T) importFixture {
	t.Helper()
	for _, key := range []string{"BOOKSHELF_ENV", "BOOKSHELF_LOG_LEVEL", "BOOKSHELF_BACKEND", "BOOKSHELF_DB", "BOOKSHELF_IMAGES"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	f := importFixture{dir: dir, dbPath: filepath.Join(dir, "shelf.db"), file: filepath.Join(dir, "export.json")}
	require.NoError(t, os.WriteFile(f.file, []byte(export), 0o644))
	return f
}

func (f importFixture) seed(t *testing.T, value string) {
	t.Helper()
	db, err := bookshelf.NewDatabase(f.dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Set(bookshelf.StorageKey, value))
	require.NoError(t, db.Close())
}

func (f importFixture) stored(t *testing.T) string {
	t.Helper()
	db, err := bookshelf.NewDatabase(f.dbPath)
	require.NoError(t, err)
	defer db.Close()
	v, ok, err := db.Get(bookshelf.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	return v
}

func (f importFixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	backendFlag, dbFlag, envFileFlag, appendFlag = "", "", "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--db", f.dbPath, "--env-file", filepath.Join(f.dir, "missing.env")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestImportReplacesMalformedState(t *testing.T) {
	f := newImportFixture(t)
	f.seed(t, "{broken")

	out, err := f.run(t, f.file)
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully imported: 1 books")
	assert.Equal(t, export, f.stored(t), "ids, covers and text are stored as exported")
}

func TestImportAppendKeepsExisting(t *testing.T) {
	f := newImportFixture(t)
	f.seed(t, `[{"id":1,"title":"Bumi","author":"Tere Liye","year":2014,"image":"foto/buku1.png","isComplete":false}]`)

	out, err := f.run(t, "--append", f.file)
	require.NoError(t, err)
	assert.Contains(t, out, "Books on shelf: 2")

	books, err := bookshelf.DecodeBooks([]byte(f.stored(t)))
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, int64(1), books[0].ID)
	assert.Equal(t, "Pride & <Prejudice>", books[1].Title)
	assert.NotEqual(t, int64(1718000000000), books[1].ID, "appended books get fresh ids")
}

func TestImportAppendRejectsMalformedState(t *testing.T) {
	f := newImportFixture(t)
	f.seed(t, "{broken")

	_, err := f.run(t, "--append", f.file)
	require.ErrorIs(t, err, bookshelf.ErrMalformedState)
	assert.Equal(t, "{broken", f.stored(t), "nothing is overwritten")
}

func TestImportRejectsBadExport(t *testing.T) {
	f := newImportFixture(t)
	require.NoError(t, os.WriteFile(f.file, []byte("not json"), 0o644))

	_, err := f.run(t, f.file)
	require.ErrorIs(t, err, bookshelf.ErrMalformedState)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "Bumi", truncateString("Bumi", 10))
	assert.Equal(t, "Lask...", truncateString("Laskar Pelangi", 7))
	assert.Equal(t, "La", truncateString("Laskar", 2))
}
