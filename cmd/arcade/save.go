package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-sim/internal/profile"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Manage adventure save slots",
	Long: `List, inspect and delete adventure save slots.

Examples:
  arcade save list
  arcade save show default
  arcade save delete alice`,
}

var saveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List save slots",
	Args:  cobra.NoArgs,
	RunE:  runSaveList,
}

var saveShowCmd = &cobra.Command{
	Use:   "show <slot>",
	Short: "Print a save slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSaveShow,
}

var saveDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSaveDelete,
}

func init() {
	saveCmd.AddCommand(saveListCmd)
	saveCmd.AddCommand(saveShowCmd)
	saveCmd.AddCommand(saveDeleteCmd)
}

func runSaveList(_ *cobra.Command, _ []string) error {
	store, err := mustStore()
	if err != nil {
		return err
	}
	defer store.Close()

	slots, err := store.ProfileSlots()
	if err != nil {
		return fmt.Errorf("cannot list slots: %w", err)
	}
	if len(slots) == 0 {
		fmt.Println("No saves yet. Press Ctrl+S while playing the adventure.")
		return nil
	}

	fmt.Println("Save slots:")
	fmt.Println()
	for _, slot := range slots {
		saver := profile.NewSaver(store, slot, logger)
		when := "unknown"
		if t, ok := saver.LastSaved(); ok {
			when = t.Local().Format(time.DateTime)
		}
		summary := "unreadable"
		if p, ok := saver.Load(); ok {
			summary = fmt.Sprintf("%s, %d/%d hearts, %d items", p.Room, p.Health, p.MaxHealth, len(p.Items))
		}
		fmt.Printf("  %-12s  %s  %s\n", slot, when, summary)
	}
	return nil
}

func runSaveShow(_ *cobra.Command, args []string) error {
	store, err := mustStore()
	if err != nil {
		return err
	}
	defer store.Close()

	saver := profile.NewSaver(store, args[0], logger)
	p, ok := saver.Load()
	if !ok {
		return fmt.Errorf("no readable save in slot %q", saver.Slot())
	}
	data, err := profile.Encode(p)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func runSaveDelete(_ *cobra.Command, args []string) error {
	store, err := mustStore()
	if err != nil {
		return err
	}
	defer store.Close()

	saver := profile.NewSaver(store, args[0], logger)
	if !saver.HasSave() {
		return fmt.Errorf("slot %q is empty", saver.Slot())
	}
	if !saver.Delete() {
		return fmt.Errorf("could not delete slot %q", saver.Slot())
	}
	fmt.Printf("Deleted slot %q.\n", saver.Slot())
	return nil
}
