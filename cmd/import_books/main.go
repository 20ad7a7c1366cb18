package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"bookshelf-manager/bookshelf"
	"bookshelf-manager/internal/config"
	"bookshelf-manager/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	backendFlag string
	dbFlag      string
	envFileFlag string
	appendFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "import_books [file]",
	Short: "Import a BOOKSHELF_APPS JSON export into the configured storage",
	Long: `import_books reads a JSON array of books, as stored by the browser
bookshelf under the BOOKSHELF_APPS key, and writes it to the configured
backend. Use "-" to read from stdin.

By default the stored shelf is replaced, keeping ids and covers. With
--append each book is validated and added with a fresh id and cover.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runImport,
}

func init() {
	rootCmd.Flags().StringVar(&backendFlag, "backend", "", "Storage backend: sqlite, badger or memory")
	rootCmd.Flags().StringVar(&dbFlag, "db", "", "Database file, or directory for badger")
	rootCmd.Flags().StringVar(&envFileFlag, "env-file", config.DefaultEnvFile, "Path to .env file")
	rootCmd.Flags().BoolVar(&appendFlag, "append", false, "Append to the existing shelf instead of replacing it")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.Overrides{Backend: backendFlag, DBPath: dbFlag, EnvFile: envFileFlag})
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		return err
	}
	defer log.Sync()

	data, err := readInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}
	books, err := bookshelf.DecodeBooks(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	kv, err := bookshelf.OpenBackend(cfg.Backend, cfg.DBPath)
	if err != nil {
		return err
	}
	defer kv.Close()

	persist := bookshelf.NewPersistence(kv, log)
	if !persist.Available() {
		return fmt.Errorf("storage %s at %s is not available", cfg.Backend, cfg.DBPath)
	}
	store := bookshelf.NewStore(
		bookshelf.WithImagePicker(bookshelf.NewImagePicker(cfg.Images, nil)),
		bookshelf.WithLogger(log),
	)
	shelf := bookshelf.NewShelf(store, persist, nil, log)
	// Replacing does not read the stored shelf, so a malformed one can be
	// overwritten.
	if appendFlag {
		if err := shelf.Open(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Importing %d book(s) from %s...\n", len(books), args[0])
	n, err := shelf.Import(books, appendFlag)
	if err != nil {
		log.Warn("import stopped", zap.Int("imported", n), zap.Error(err))
		return err
	}

	fmt.Fprintf(out, "\nImport complete!\n")
	fmt.Fprintf(out, "Successfully imported: %d books\n", n)
	fmt.Fprintf(out, "Books on shelf: %d\n", shelf.Count())

	if n > 0 {
		fmt.Fprintln(out, "\nShelf:")
		fmt.Fprintf(out, "%-15s %-50s %-30s\n", "ID", "Title", "Author")
		fmt.Fprintln(out, strings.Repeat("-", 97))
		for _, b := range shelf.Books() {
			fmt.Fprintf(out, "%-15d %-50s %-30s\n", b.ID, truncateString(b.Title, 50), truncateString(b.Author, 30))
		}
	}
	return nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	return data, nil
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
