package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironhollow/stronghold/internal/engine"
	"github.com/ironhollow/stronghold/internal/mission"
)

func missionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "missions",
		Short: "List and start missions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(func(game *engine.Stronghold) error {
				if viper.GetBool("json") {
					return printJSON(map[string]any{
						"active":    game.Missions,
						"completed": game.CompletedMissions,
					})
				}

				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Mission", "Status", "Weeks Left", "Party"})
				for _, m := range game.Missions {
					tw.AppendRow(table.Row{m.Name, m.Status.String(), m.Remaining, len(m.AssignedNPCs)})
				}
				for _, m := range game.CompletedMissions {
					tw.AppendRow(table.Row{m.Name, m.Status.String(), "-", "-"})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.AddCommand(missionStartCmd())
	return cmd
}

func missionStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <mission> <npc...>",
		Short: "Send a party on an available mission",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(func(game *engine.Stronghold) error {
				var target *mission.Mission
				for _, m := range game.Missions {
					if m.Name == args[0] {
						target = m
						break
					}
				}
				if target == nil {
					return fmt.Errorf("no available mission named %q", args[0])
				}

				ids, err := gatherNPCIDs(game, args[1:])
				if err != nil {
					return err
				}
				if !game.StartMission(target.ID, ids) {
					return fmt.Errorf("cannot start %s: requirements unmet or party unavailable", target.Name)
				}
				fmt.Printf("%s has set out with a party of %d.\n", target.Name, len(target.AssignedNPCs))
				return nil
			})
		},
	}
}
