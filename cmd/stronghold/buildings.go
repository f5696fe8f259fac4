package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ironhollow/stronghold/internal/engine"
)

func buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <type> <name>",
		Short: "Plan a new building",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveBuildingType(args[0])
			if err != nil {
				return err
			}
			return withGame(func(game *engine.Stronghold) error {
				b := game.NewBuilding(t, args[1])
				if !game.AddBuilding(b) {
					return fmt.Errorf("cannot afford %s (cost %v)", args[0], b.ConstructionCost)
				}
				fmt.Printf("%s planned. Assign workers or a construction crew to begin.\n", b.Name)
				return nil
			})
		},
	}
}

func gatherNPCIDs(game *engine.Stronghold, names []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		n, err := findNPC(game, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, n.ID)
	}
	return ids, nil
}

func assignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <building> [npc...]",
		Short: "Replace a building's worker assignment",
		Long:  "Replaces the building's entire worker set. With no inhabitants named, clears it.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(func(game *engine.Stronghold) error {
				b, err := findBuilding(game, args[0])
				if err != nil {
					return err
				}
				ids, err := gatherNPCIDs(game, args[1:])
				if err != nil {
					return err
				}
				if !game.AssignWorkersToBuilding(b.ID, ids) {
					return fmt.Errorf("assignment rejected: %s has %d worker slots", b.Name, b.WorkerSlots)
				}
				fmt.Printf("%s now has %d workers.\n", b.Name, b.AssignedWorkerCount())
				return nil
			})
		},
	}
}

func crewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crew <building> [npc...]",
		Short: "Set a building's construction crew (max 3)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(func(game *engine.Stronghold) error {
				b, err := findBuilding(game, args[0])
				if err != nil {
					return err
				}
				ids, err := gatherNPCIDs(game, args[1:])
				if err != nil {
					return err
				}
				if !game.AssignConstructionCrewToBuilding(b.ID, ids) {
					return fmt.Errorf("crew rejected: at most 3 inhabitants")
				}
				fmt.Printf("%s has a crew of %d.\n", b.Name, len(b.ConstructionCrew))
				return nil
			})
		},
	}
}

func repairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repair <building>",
		Short: "Start repairing a damaged building",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(func(game *engine.Stronghold) error {
				b, err := findBuilding(game, args[0])
				if err != nil {
					return err
				}
				if !game.StartBuildingRepair(b.ID) {
					return fmt.Errorf("cannot repair %s: not damaged, or cost %v unaffordable", b.Name, b.RepairCost())
				}
				fmt.Printf("Repairing %s, %d weeks.\n", b.Name, b.RepairTimeRemaining)
				return nil
			})
		},
	}
}

func upgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade <building>",
		Short: "Start upgrading a building to its next level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(func(game *engine.Stronghold) error {
				b, err := findBuilding(game, args[0])
				if err != nil {
					return err
				}
				if !game.StartBuildingUpgrade(b.ID) {
					return fmt.Errorf("cannot upgrade %s: at max level, incomplete, or cost %v unaffordable",
						b.Name, b.UpgradeCost())
				}
				fmt.Printf("Upgrading %s to level %d, %d weeks.\n", b.Name, b.Level+1, b.UpgradeTimeRemaining)
				return nil
			})
		},
	}
}

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "project", Short: "Manage building projects"}
	cmd.AddCommand(&cobra.Command{
		Use:   "start <building> <project>",
		Short: "Start a project on a building",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(func(game *engine.Stronghold) error {
				b, err := findBuilding(game, args[0])
				if err != nil {
					return err
				}
				if !game.StartBuildingProject(b.ID, args[1]) {
					return fmt.Errorf("cannot start %q at %s: unknown or locked project, busy building, or unaffordable", args[1], b.Name)
				}
				fmt.Printf("Project %s started at %s.\n", b.CurrentProject.Name, b.Name)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "cancel <building>",
		Short: "Cancel a building's active project (cost is sunk)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(func(game *engine.Stronghold) error {
				b, err := findBuilding(game, args[0])
				if err != nil {
					return err
				}
				if !game.CancelBuildingProject(b.ID) {
					return fmt.Errorf("%s has no active project", b.Name)
				}
				fmt.Printf("Project cancelled at %s.\n", b.Name)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list <building>",
		Short: "List the projects a building can run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(func(game *engine.Stronghold) error {
				b, err := findBuilding(game, args[0])
				if err != nil {
					return err
				}
				for _, tpl := range b.Spec().ProjectsAt(b.Level) {
					line := fmt.Sprintf("%s: %d weeks, cost %v, reward %v", tpl.Name, tpl.DurationWeeks, tpl.Cost, tpl.CompletionReward)
					if len(tpl.WeeklyUpkeep) > 0 {
						line += fmt.Sprintf(", weekly upkeep %v", tpl.WeeklyUpkeep)
					}
					if len(tpl.WeeklyProduction) > 0 {
						line += fmt.Sprintf(", weekly yield %v", tpl.WeeklyProduction)
					}
					fmt.Println(line)
				}
				return nil
			})
		},
	})
	return cmd
}
