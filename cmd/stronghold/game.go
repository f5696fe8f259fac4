package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironhollow/stronghold/internal/api"
	"github.com/ironhollow/stronghold/internal/engine"
	"github.com/ironhollow/stronghold/internal/persistence"
)

func newCmd() *cobra.Command {
	var name, location string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			db, err := persistence.Open(viper.GetString("db"))
			if err != nil {
				return err
			}
			defer db.Close()

			cat, err := loadCatalog()
			if err != nil {
				return err
			}

			game := engine.New(engine.Config{
				Name:     name,
				Location: location,
				Catalog:  cat,
				Rand:     gameRand(name),
			})
			if err := db.SaveGame(game); err != nil {
				return err
			}
			fmt.Printf("Founded %s at %s. %s.\n", game.Name, game.Location, game.Date())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "stronghold name")
	cmd.Flags().StringVar(&location, "location", "", "where the stronghold stands")
	return cmd
}

func advanceCmd() *cobra.Command {
	var weeks int

	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Advance the game by one or more weeks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(func(game *engine.Stronghold) error {
				var last *engine.WeeklyReport
				for i := 0; i < weeks; i++ {
					last = game.AdvanceWeek()
				}
				if viper.GetBool("json") {
					return printJSON(last)
				}
				printReport(game, last)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&weeks, "weeks", 1, "number of weeks to advance")
	return cmd
}

func printReport(game *engine.Stronghold, report *engine.WeeklyReport) {
	fmt.Printf("%s\n\n", game.Date())

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Resource", "Amount", "Weekly"})
	for _, d := range report.Resources {
		if d.Current == 0 && d.Net == 0 {
			continue
		}
		tw.AppendRow(table.Row{d.Type.String(), humanize.Comma(int64(d.Current)), fmt.Sprintf("%+d", d.Net)})
	}
	tw.Render()

	for _, name := range report.CompletedConstruction {
		fmt.Printf("construction finished: %s\n", name)
	}
	for _, name := range report.CompletedRepairs {
		fmt.Printf("repair finished: %s\n", name)
	}
	for _, name := range report.CompletedUpgrades {
		fmt.Printf("upgrade finished: %s\n", name)
	}
	for _, name := range report.CompletedProjects {
		fmt.Printf("project finished: %s\n", name)
	}
	for _, m := range report.Missions {
		outcome := "failed"
		if m.Succeeded {
			outcome = "succeeded"
		}
		fmt.Printf("mission %s: %s\n", outcome, m.Name)
	}
	for _, name := range report.Deaths {
		fmt.Printf("died: %s\n", name)
	}
	for _, u := range report.Upcoming {
		what := u.Operation
		if u.Detail != "" {
			what = fmt.Sprintf("%s (%s)", u.Operation, u.Detail)
		}
		fmt.Printf("upcoming: %s at %s, %d weeks left\n", what, u.BuildingName, u.WeeksLeft)
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current state of the stronghold",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(func(game *engine.Stronghold) error {
				if viper.GetBool("json") {
					return printJSON(map[string]any{
						"name": game.Name, "location": game.Location,
						"date": game.Date(), "reputation": game.Reputation,
						"treasury": game.Treasury(), "population": game.Roster.LivingCount(),
					})
				}

				fmt.Printf("%s — %s\n", game.Name, game.Location)
				fmt.Printf("%s | treasury %s gold | reputation %d | %d inhabitants\n\n",
					game.Date(), humanize.Comma(int64(game.Treasury())), game.Reputation, game.Roster.LivingCount())

				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Resource", "Amount", "Production", "Upkeep"})
				for _, rec := range game.Ledger.All() {
					if rec.Amount == 0 && rec.WeeklyProduction == 0 && rec.WeeklyConsumption == 0 {
						continue
					}
					tw.AppendRow(table.Row{rec.Type.String(), humanize.Comma(int64(rec.Amount)),
						rec.WeeklyProduction, rec.WeeklyConsumption})
				}
				tw.Render()
				fmt.Println()

				tw = table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Building", "Type", "Lvl", "Status", "Cond", "Workers"})
				for _, b := range game.Buildings {
					workers := fmt.Sprintf("%d/%d", b.AssignedWorkerCount(), b.WorkerSlots)
					if len(b.ConstructionCrew) > 0 {
						workers += fmt.Sprintf(" +%d crew", len(b.ConstructionCrew))
					}
					tw.AppendRow(table.Row{b.Name, b.Type.String(), b.Level, b.Status.String(), b.Condition, workers})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func journalCmd() *cobra.Command {
	var entryType string
	var limit int

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(func(game *engine.Stronghold) error {
				entries := game.Journal.Recent(limit)
				if entryType != "" {
					entries = game.Journal.ByType(entryType)
					if len(entries) > limit {
						entries = entries[len(entries)-limit:]
					}
				}
				if viper.GetBool("json") {
					return printJSON(entries)
				}
				for _, e := range entries {
					marker := " "
					if e.Importance >= engine.ImportanceHigh {
						marker = "!"
					}
					fmt.Printf("%s [Y%d W%02d] %-12s %s — %s\n", marker, e.Year, e.Week, e.Type, e.Title, e.Description)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&entryType, "type", "", "filter by entry type")
	cmd.Flags().IntVar(&limit, "limit", 20, "entries to show")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game state over HTTP (read-only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(func(game *engine.Stronghold) error {
				srv := &api.Server{Game: game, Port: port}
				srv.Start()
				fmt.Printf("serving %s on :%d, ctrl-c to stop\n", game.Name, port)

				sig := make(chan os.Signal, 1)
				signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
				<-sig
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "listen port")
	return cmd
}
