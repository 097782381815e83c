package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"gameshelf/internal/app"
	"gameshelf/internal/config"
	"gameshelf/internal/model"
	"gameshelf/internal/shelf"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a ShelfApp. The caller must defer app.Close().
// command identifies the CLI command being run (e.g. "list", "move").
func newApp(ctx context.Context, command string) (*app.ShelfApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewShelfApp(ctx, cfg, command)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

func parseGameID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid game id %q", s)
	}
	return id, nil
}

// confirm asks the user a yes/no question on the terminal. It returns false
// without asking when stdin is not a terminal.
func confirm(question string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	fmt.Printf("%s [y/N] ", question)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// finishMove handles the result of a move, asking for confirmation and
// re-issuing the move when the coordinator requires it.
func finishMove(ctx context.Context, a *app.ShelfApp, res shelf.MoveResult, err error, yes bool) error {
	var cr *model.ConfirmationRequiredError
	if errors.As(err, &cr) {
		if !yes && !confirm(cr.Message) {
			return fmt.Errorf("%s (not confirmed; re-run with --yes to move anyway)", cr.Message)
		}
		res, err = a.MoveGame(ctx, cr.GameID, cr.FromID, cr.ToID, true)
	}

	if res.Outcome == shelf.MoveRollbackFailed {
		fmt.Fprintf(os.Stderr, "warning: the game is no longer in either collection: %v\n", res.RollbackErr)
	}
	if err != nil {
		return err
	}

	fmt.Println("Game moved.")
	return nil
}

func printCollections(cs []*model.GameCollection) {
	if len(cs) == 0 {
		fmt.Println("No collections found.")
		return
	}
	for _, c := range cs {
		fmt.Printf("%s  %-18s  %s\n", c.ID, c.Type.DisplayName(), c.Name)
	}
}

var rootCmd = &cobra.Command{
	Use:          "shelf",
	Short:        "Organize your games into collections",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		installationID := uuid.New().String()
		cfg := config.NewConfig(installationID, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Installation ID: %s\n", installationID)
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Installation ID: %s\n", cfg.InstallationID)
		fmt.Printf("Base Dir:        %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:         %s (%s)\n", cfg.LogDir, cfg.LogLevel)
		fmt.Printf("Database:        %s %s\n", cfg.Database.Type, cfg.Database.DataDir)
		fmt.Printf("Cache Freshness: %s\n", cfg.Cache.Freshness)
		fmt.Printf("Catalog:         %s %s\n", cfg.Catalog.Type, cfg.Catalog.Path)
		return nil
	},
}

// init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create any missing default collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		ctx := cmd.Context()

		// Opening the app already runs the startup check.
		a, err := newApp(ctx, "init")
		if err != nil {
			return err
		}
		defer a.Close()

		if !force {
			fmt.Println("Default collections are in place.")
			return nil
		}

		res, err := a.Reinitialize(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Created %d default collection(s) in %s\n", len(res.Created), res.Elapsed)
		return nil
	},
}

// list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts shelf.SortOptions
		opts.ByType, _ = cmd.Flags().GetBool("by-type")
		opts.ByName, _ = cmd.Flags().GetBool("by-name")
		opts.ByGameCount, _ = cmd.Flags().GetBool("by-count")
		opts.Descending, _ = cmd.Flags().GetBool("desc")
		if !opts.ByType && !opts.ByName && !opts.ByGameCount {
			opts.ByType = true
		}
		ctx := cmd.Context()

		a, err := newApp(ctx, "list")
		if err != nil {
			return err
		}
		defer a.Close()

		list, err := a.ListCollections(ctx, opts)
		if err != nil {
			return err
		}

		for _, s := range list {
			fmt.Printf("%s  %-18s  %4d  %s\n", s.Collection.ID, s.Collection.Type.DisplayName(), s.GameCount, s.Collection.Name)
		}
		return nil
	},
}

// create command
var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a custom collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, _ := cmd.Flags().GetString("description")
		ctx := cmd.Context()

		a, err := newApp(ctx, "create")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.CreateCollection(ctx, args[0], desc)
		if err != nil {
			return err
		}
		fmt.Printf("Created collection %q (%s)\n", c.Name, c.ID)
		return nil
	},
}

// show command
var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a collection and its games",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx, "show")
		if err != nil {
			return err
		}
		defer a.Close()

		d, err := a.ShowCollection(ctx, args[0])
		if err != nil {
			return err
		}

		c := d.Collection
		fmt.Printf("%s (%s)\n", c.Name, c.Type.DisplayName())
		if c.Description != nil {
			fmt.Println(*c.Description)
		}
		fmt.Printf("Updated %s\n\n", c.UpdatedAt.Local().Format("2006-01-02 15:04:05"))

		if len(d.Entries) == 0 {
			fmt.Println("No games.")
			return nil
		}
		for _, e := range d.Entries {
			name := e.Game.Name
			if name == "" {
				name = "(unknown game)"
			}
			fmt.Printf("%8d  %s  %s\n", e.Game.ID, e.AddedAt.Local().Format("2006-01-02"), name)
		}
		return nil
	},
}

// rename command
var renameCmd = &cobra.Command{
	Use:   "rename ID NAME",
	Short: "Rename a custom collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx, "rename")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.RenameCollection(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Renamed collection to %q\n", c.Name)
		return nil
	},
}

// describe command
var describeCmd = &cobra.Command{
	Use:   "describe ID [TEXT]",
	Short: "Set or clear a collection's description",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx, "describe")
		if err != nil {
			return err
		}
		defer a.Close()

		text := ""
		if len(args) > 1 {
			text = args[1]
		}
		c, err := a.DescribeCollection(ctx, args[0], text)
		if err != nil {
			return err
		}
		if c.Description == nil {
			fmt.Printf("Cleared description of %q\n", c.Name)
		} else {
			fmt.Printf("Updated description of %q\n", c.Name)
		}
		return nil
	},
}

// delete command
var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a custom collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx, "delete")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.DeleteCollection(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("Collection deleted.")
		return nil
	},
}

// add command
var addCmd = &cobra.Command{
	Use:   "add ID GAME_ID",
	Short: "Add a game to a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		gameID, err := parseGameID(args[1])
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		a, err := newApp(ctx, "add")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.AddGame(ctx, args[0], gameID); err != nil {
			return err
		}
		fmt.Println("Game added.")
		return nil
	},
}

// remove command
var removeCmd = &cobra.Command{
	Use:   "remove ID GAME_ID",
	Short: "Remove a game from a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		gameID, err := parseGameID(args[1])
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		a, err := newApp(ctx, "remove")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.RemoveGame(ctx, args[0], gameID); err != nil {
			return err
		}
		fmt.Println("Game removed.")
		return nil
	},
}

// move command
var moveCmd = &cobra.Command{
	Use:   "move GAME_ID FROM_ID TO_ID",
	Short: "Move a game between collections",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		gameID, err := parseGameID(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		a, err := newApp(ctx, "move")
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.MoveGame(ctx, gameID, args[1], args[2], false)
		return finishMove(ctx, a, res, err, yes)
	},
}

// next command
var nextCmd = &cobra.Command{
	Use:   "next GAME_ID CURRENT_ID",
	Short: "Advance a game to its next status collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		gameID, err := parseGameID(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		a, err := newApp(ctx, "next")
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.MoveToNext(ctx, gameID, args[1])
		return finishMove(ctx, a, res, err, yes)
	},
}

// find command
var findCmd = &cobra.Command{
	Use:   "find [QUERY]",
	Short: "Search collections by name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx, "find")
		if err != nil {
			return err
		}
		defer a.Close()

		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		cs, err := a.Find(ctx, query)
		if err != nil {
			return err
		}
		printCollections(cs)
		return nil
	},
}

// where command
var whereCmd = &cobra.Command{
	Use:   "where GAME_ID",
	Short: "List the collections holding a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gameID, err := parseGameID(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		a, err := newApp(ctx, "where")
		if err != nil {
			return err
		}
		defer a.Close()

		cs, err := a.Where(ctx, gameID)
		if err != nil {
			return err
		}
		printCollections(cs)
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Re-check storage even if already initialized")
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("by-type", false, "Sort by collection type (default)")
	listCmd.Flags().Bool("by-name", false, "Sort by name")
	listCmd.Flags().Bool("by-count", false, "Sort by number of games")
	listCmd.Flags().Bool("desc", false, "Reverse the sort order")
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringP("description", "d", "", "Collection description")
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(moveCmd)
	moveCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(nextCmd)
	nextCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(whereCmd)
}
