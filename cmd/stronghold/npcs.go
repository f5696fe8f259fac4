package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironhollow/stronghold/internal/engine"
)

func recruitCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "recruit",
		Short: "Recruit new inhabitants",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(func(game *engine.Stronghold) error {
				for i := 0; i < count; i++ {
					n := game.RecruitNPC()
					fmt.Printf("%s the %s has joined the stronghold.\n", n.Name, n.Type.String())
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "how many to recruit")
	return cmd
}

func dismissCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <npc>",
		Short: "Release an inhabitant from the stronghold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(func(game *engine.Stronghold) error {
				n, err := findNPC(game, args[0])
				if err != nil {
					return err
				}
				if !game.DismissNPC(n.ID) {
					return fmt.Errorf("%s cannot be dismissed right now", n.Name)
				}
				fmt.Printf("%s has left the stronghold.\n", n.Name)
				return nil
			})
		},
	}
}

func npcsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "npcs",
		Short: "List the inhabitants",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(func(game *engine.Stronghold) error {
				if viper.GetBool("json") {
					return printJSON(game.Roster.All())
				}

				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Name", "Type", "Lvl", "Status", "Health", "Assignment"})
				for _, n := range game.Roster.All() {
					if !n.Alive {
						continue
					}
					health := "-"
					if len(n.Health) > 0 {
						states := make([]string, len(n.Health))
						for i, h := range n.Health {
							states[i] = string(h)
						}
						health = strings.Join(states, ", ")
					}
					assignment := "-"
					if !n.IsUnassigned() {
						assignment = n.Assignment.TargetName
					}
					tw.AppendRow(table.Row{n.Name, n.Type.String(), n.Level, n.Status().String(), health, assignment})
				}
				tw.Render()
				return nil
			})
		},
	}
}
