package cmd

import (
	"errors"

	"github.com/huangsam/hangarlog/core"
	"github.com/huangsam/hangarlog/core/algo"
	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/internal/iostore"
	"github.com/spf13/cobra"
)

// fatalSave reports a failed add or edit, pointing at --force for duplicate warnings.
func fatalSave(msg string, err error) {
	if errors.Is(err, algo.ErrPossibleDuplicate) {
		contract.LogFatal(msg+" (use --force to save anyway)", err)
	}
	contract.LogFatal(msg, err)
}

// addCmd logs a new sighting or flight.
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log an aircraft you spotted or flew on.",
	Long: `Add an entry to the logbook.

The registration is normalized (trimmed, upper-cased) and the entry is marked
as a first sighting when the registration has never been logged before.
An entry with the same registration and location within two hours of an
existing one is treated as a possible duplicate and rejected unless --force is given.

Examples:
  # Log a spotting at Heathrow right now
  hangarlog add --reg G-XLEA --type A35K --operator "British Airways" --location Heathrow

  # Log a flight you took yesterday, with a photo
  hangarlog add --mode flown --reg N12AB --flight UA1 --when "1 day ago" --photo ./n12ab.jpg

  # Use the configured home coordinates
  hangarlog add --reg 9V-SKA --here`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		req, err := addRequestFromFlags(cmd.Flags(), cfg)
		if err != nil {
			contract.LogFatal("Invalid entry", err)
		}
		if err := core.ExecuteAdd(rootCtx, cfg, iostore.Manager, req); err != nil {
			fatalSave("Cannot add entry", err)
		}
	},
}

// editCmd changes an existing entry.
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of an existing entry.",
	Long: `Edit an entry identified by its ID or a unique ID prefix.

Only the flags you pass are changed. The first-sighting flag is recomputed
against the rest of the logbook.

Examples:
  hangarlog edit 3f2a --location Gatwick
  hangarlog edit 3f2a --clear-coords
  hangarlog edit 3f2a --add-photo ./extra.jpg --remove-photo 1b9d...png`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		patch, err := patchFromFlags(cmd.Flags(), cfg)
		if err != nil {
			contract.LogFatal("Invalid entry", err)
		}
		if err := core.ExecuteEdit(rootCtx, cfg, iostore.Manager, args[0], patch); err != nil {
			fatalSave("Cannot edit entry", err)
		}
	},
}

// deleteCmd removes one entry.
var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete an entry and its photos.",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteDelete(rootCtx, cfg, iostore.Manager, args[0]); err != nil {
			contract.LogFatal("Cannot delete entry", err)
		}
	},
}

// purgeCmd removes every entry.
var purgeCmd = &cobra.Command{
	Use:     "purge",
	Short:   "Delete every entry and photo.",
	Long:    `Remove the whole logbook. Requires --yes.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			contract.LogFatal("Refusing to purge", errors.New("pass --yes to delete every entry"))
		}
		if err := core.ExecutePurge(rootCtx, cfg, iostore.Manager); err != nil {
			contract.LogFatal("Cannot purge logbook", err)
		}
	},
}

// showCmd prints one entry.
var showCmd = &cobra.Command{
	Use:     "show <id>",
	Short:   "Show an entry and the history of its registration.",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteShow(rootCtx, cfg, iostore.Manager, args[0]); err != nil {
			contract.LogFatal("Cannot show entry", err)
		}
	},
}

// photoCmd groups photo operations.
var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Work with the photos attached to entries",
}

// photoGetCmd saves a photo of an entry to disk.
var photoGetCmd = &cobra.Command{
	Use:   "get <id> [index]",
	Short: "Save a photo of an entry to a file.",
	Long: `Save the photo at the given 1-based index (default 1) to --output-file,
or to a file named after the photo key in the current directory.`,
	Args:    cobra.RangeArgs(1, 2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		index := 1
		if len(args) == 2 {
			var err error
			if index, err = parsePhotoIndex(args[1]); err != nil {
				contract.LogFatal("Invalid photo index", err)
			}
		}
		if err := core.ExecutePhotoGet(rootCtx, cfg, iostore.Manager, args[0], index); err != nil {
			contract.LogFatal("Cannot get photo", err)
		}
	},
}
