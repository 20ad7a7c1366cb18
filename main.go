package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"bookshelf-manager/bookshelf"
	"bookshelf-manager/internal/config"
	"bookshelf-manager/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	backendFlag  string
	dbFlag       string
	logLevelFlag string
	envFileFlag  string

	app *application
)

// application holds everything a command needs for one process.
type application struct {
	log   *zap.Logger
	kv    bookshelf.Backend
	shelf *bookshelf.Shelf
	sink  *bookshelf.TextSink
	out   io.Writer
	count int
}

func newApplication(cfg *config.Config, log *zap.Logger, out io.Writer) (*application, error) {
	kv, err := bookshelf.OpenBackend(cfg.Backend, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	sink := bookshelf.NewTextSink(out)
	store := bookshelf.NewStore(
		bookshelf.WithImagePicker(bookshelf.NewImagePicker(cfg.Images, nil)),
		bookshelf.WithLogger(log),
	)
	shelf := bookshelf.NewShelf(store, bookshelf.NewPersistence(kv, log), bookshelf.NewProjector(sink, nil), log)

	a := &application{log: log, kv: kv, shelf: shelf, sink: sink, out: out}
	shelf.OnCount(func(n int) { a.count = n })

	if err := shelf.Open(); err != nil {
		kv.Close()
		return nil, err
	}
	return a, nil
}

func (a *application) Close() {
	if err := a.kv.Close(); err != nil {
		a.log.Warn("close storage", zap.Error(err))
	}
}

func (a *application) printCount() {
	fmt.Fprintf(a.out, "Books on shelf: %d\n", a.count)
}

var rootCmd = &cobra.Command{
	Use:   "bookshelf",
	Short: "Keep track of the books you are reading and have finished",
	Long: `bookshelf keeps a list of books split into "not yet read" and "finished".

The whole shelf is stored as one JSON value under the BOOKSHELF_APPS key in a
local SQLite file (or Badger directory), so a shelf exported from the browser
version can be imported with import_books.

Run without arguments to list the shelf.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.Overrides{
			Backend:  backendFlag,
			DBPath:   dbFlag,
			LogLevel: logLevelFlag,
			EnvFile:  envFileFlag,
		})
		if err != nil {
			return err
		}
		log, err := logger.New(cfg.LogLevel, cfg.Env)
		if err != nil {
			return err
		}
		app, err = newApplication(cfg, log, cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("open shelf: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return listBooks()
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book",
	Example: `  bookshelf add --title "Laskar Pelangi" --author "Andrea Hirata" --year 2005
  bookshelf add --title "Bumi" --author "Tere Liye" --year 2014 --complete`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := bookshelf.Form{}
		f.Title, _ = cmd.Flags().GetString("title")
		f.Author, _ = cmd.Flags().GetString("author")
		f.Year, _ = cmd.Flags().GetString("year")
		f.IsComplete, _ = cmd.Flags().GetBool("complete")

		b, err := app.shelf.SubmitAdd(f)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.out, "Added book ID %d.\n", b.ID)
		app.printCount()
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the shelf",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listBooks()
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [title]",
	Short: "List books whose title contains the query (case-insensitive)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		incomplete, complete := app.shelf.Search(query)
		if len(incomplete)+len(complete) == 0 {
			fmt.Fprintf(app.out, "No books found matching '%s'.\n", query)
			return nil
		}
		app.sink.Flush()
		return nil
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle [id]",
	Short: "Move a book between not yet read and finished",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if app.shelf.ToggleComplete(id) {
			b, _ := app.shelf.Find(id)
			fmt.Fprintf(app.out, "Book '%s' marked %s.\n", b.Title, statusLabel(b.IsComplete))
			app.printCount()
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a book",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if app.shelf.Delete(id) {
			fmt.Fprintf(app.out, "Deleted book ID %d.\n", id)
			app.printCount()
		}
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a book (it is saved as a new record with a new ID)",
	Long: `Edit replaces a book with the given values. Flags that are not set keep
the current value. The edited book gets a new ID and cover and moves to the
end of the shelf.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		current, ok := app.shelf.Find(id)
		if !ok {
			return nil
		}

		f := bookshelf.FormOf(current)
		flags := cmd.Flags()
		if flags.Changed("title") {
			f.Title, _ = flags.GetString("title")
		}
		if flags.Changed("author") {
			f.Author, _ = flags.GetString("author")
		}
		if flags.Changed("year") {
			f.Year, _ = flags.GetString("year")
		}
		if flags.Changed("complete") {
			f.IsComplete, _ = flags.GetBool("complete")
		}

		b, err := app.shelf.Update(id, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.out, "Book '%s' saved as ID %d.\n", b.Title, b.ID)
		app.printCount()
		return nil
	},
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of books",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.printCount()
		return nil
	},
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shelf",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runShell(cmd.InOrStdin(), app, isTerminal(cmd.InOrStdin()))
		return nil
	},
}

// closeApp runs after every command, including ones whose RunE failed.
func closeApp() {
	if app == nil {
		return
	}
	app.Close()
	_ = app.log.Sync()
	app = nil
}

func init() {
	cobra.OnFinalize(closeApp)

	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Storage backend: sqlite, badger or memory (env BOOKSHELF_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Database file, or directory for badger (env BOOKSHELF_DB)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (env BOOKSHELF_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", config.DefaultEnvFile, "Path to .env file")

	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().String("title", "", "Book title")
		c.Flags().String("author", "", "Book author")
		c.Flags().String("year", "", "Publication year")
		c.Flags().Bool("complete", false, "Mark the book as finished")
	}

	rootCmd.AddCommand(addCmd, listCmd, searchCmd, toggleCmd, deleteCmd, editCmd, countCmd, shellCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func listBooks() error {
	app.shelf.Show()
	app.sink.Flush()
	fmt.Fprintln(app.out)
	app.printCount()
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid book ID: %s", s)
	}
	return id, nil
}

func statusLabel(complete bool) string {
	if complete {
		return "finished"
	}
	return "not yet read"
}
