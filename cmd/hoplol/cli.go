package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hoplol/hoplol/internal/config"
	"github.com/hoplol/hoplol/internal/db"
	"github.com/hoplol/hoplol/internal/errors"
	"github.com/hoplol/hoplol/internal/ops"
	"github.com/hoplol/hoplol/internal/resolve"
	"github.com/hoplol/hoplol/internal/seed"
	"github.com/hoplol/hoplol/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(database *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "hoplol",
		Usage:   "Personal bang-command redirector",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(database, cfg),
			resolveCmd(database, cfg),
			addCmd(database),
			getCmd(database),
			listCmd(database),
			updateCmd(database),
			rmCmd(database),
			aliasCmd(database),
			seedCmd(database),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// serveCmd creates the serve command.
func serveCmd(database *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web server (redirect endpoint, management UI, JSON API)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8080, Usage: "Listen port"},
			&cli.BoolFlag{Name: "no-seed", Usage: "Skip seeding default bookmarks into an empty database"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("no-seed") {
				created, err := seed.EnsureSeeded(database)
				if err != nil {
					return outputError(err)
				}
				if created > 0 {
					fmt.Fprintf(os.Stderr, "seeded %d default bookmarks\n", created)
				}
			}

			srv := web.NewServer(database, cfg, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// resolveCmd creates the resolve command.
func resolveCmd(database *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Resolve a query to its target URL",
		ArgsUsage: "<command> [args...]",
		Action: func(c *cli.Context) error {
			query := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(query) == "" {
				return outputError(errors.NewInvalidRequest("query is required"))
			}

			store := db.NewStore(database)
			var matcher *resolve.Matcher
			if !cfg.DisableFuzzy {
				matcher = resolve.NewMatcher(store, cfg.FuzzyThreshold, cfg.FuzzyLimit, cfg.FuzzyCacheTTL())
			}

			outcome, err := resolve.NewResolver(store, matcher).Process(query)
			if err != nil {
				return outputError(err)
			}

			if outcome.Redirect() {
				// Print just the URL so the shell can use it directly
				fmt.Println(outcome.URL)
				return nil
			}
			return outputJSON(outcome)
		},
	}
}

// addCmd creates the add command.
func addCmd(database *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a bookmark",
		ArgsUsage: "<name> <url>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Description"},
			&cli.StringFlag{Name: "aliases", Aliases: []string{"a"}, Usage: "Comma-separated aliases"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return outputError(errors.NewInvalidRequest("usage: hoplol add <name> <url>"))
			}

			output, err := ops.Create(database, ops.CreateInput{
				Name:        c.Args().Get(0),
				URL:         c.Args().Get(1),
				Description: c.String("description"),
				Aliases:     parseAliases(c.String("aliases")),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output.Bookmark)
		},
	}
}

// getCmd creates the get command.
func getCmd(database *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get a bookmark by ID",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.Get(database, ops.GetInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(database *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List all bookmarks (most used first)",
		Action: func(c *cli.Context) error {
			output, err := ops.List(database)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// updateCmd creates the update command.
func updateCmd(database *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update a bookmark's name, URL, or description",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "New command name"},
			&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "New URL template"},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New description"},
		},
		Action: func(c *cli.Context) error {
			input := ops.UpdateInput{ID: c.Args().First()}

			if c.IsSet("name") {
				name := c.String("name")
				input.Name = &name
			}
			if c.IsSet("url") {
				url := c.String("url")
				input.URL = &url
			}
			if c.IsSet("description") {
				description := c.String("description")
				input.Description = &description
			}

			output, err := ops.Update(database, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// rmCmd creates the rm command.
func rmCmd(database *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a bookmark and its aliases",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.Delete(database, ops.DeleteInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// aliasCmd creates the alias command with add/rm subcommands.
func aliasCmd(database *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "alias",
		Usage: "Manage bookmark aliases",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add an alias to a bookmark",
				ArgsUsage: "<bookmark-id> <alias>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return outputError(errors.NewInvalidRequest("usage: hoplol alias add <bookmark-id> <alias>"))
					}
					output, err := ops.AddAlias(database, ops.AddAliasInput{
						BookmarkID: c.Args().Get(0),
						Alias:      c.Args().Get(1),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "rm",
				Usage:     "Remove an alias by its string",
				ArgsUsage: "<alias>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "id", Usage: "Treat the argument as an alias ID instead of its string"},
				},
				Action: func(c *cli.Context) error {
					input := ops.RemoveAliasInput{}
					if c.Bool("id") {
						input.AliasID = c.Args().First()
					} else {
						input.Alias = c.Args().First()
					}
					output, err := ops.RemoveAlias(database, input)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// seedCmd creates the seed command.
func seedCmd(database *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Insert the default bookmark set (skips taken commands)",
		Action: func(c *cli.Context) error {
			created, err := seed.Run(database)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]int{"created": created})
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if herr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", herr.Code, herr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// parseAliases splits a comma-separated string into a slice of aliases.
func parseAliases(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	aliases := make([]string, 0, len(parts))
	for _, p := range parts {
		a := strings.TrimSpace(p)
		if a != "" {
			aliases = append(aliases, a)
		}
	}
	return aliases
}
