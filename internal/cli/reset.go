package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/andy/labourcost/internal/crypto"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset data in the database",
	Long: `Reset data in the database.

Examples:
  labourcost reset timesheets   # Delete all recorded weeks and payroll runs
  labourcost reset all          # Wipe everything, employees included
  labourcost reset all --forget-key   # Also delete the database file and its stored key`,
}

var resetTimesheetsCmd = &cobra.Command{
	Use:   "timesheets",
	Short: "Delete all timesheets and payroll runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL timesheets and payroll runs. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.TimesheetRepo.DeleteAll(context.Background()); err != nil {
			return err
		}

		fmt.Println("All timesheets and payroll runs have been deleted.")
		return nil
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Delete ALL data: employees, timesheets, payroll runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL data (employees, timesheets, payroll runs). Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		forgetKey, _ := cmd.Flags().GetBool("forget-key")
		if forgetKey {
			return forgetDatabase()
		}

		ctx := context.Background()
		if err := appInstance.TimesheetRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if _, err := appInstance.DB.ExecContext(ctx, "DELETE FROM employees"); err != nil {
			return fmt.Errorf("failed to clear employees: %w", err)
		}

		fmt.Println("All data has been deleted.")
		return nil
	},
}

// forgetDatabase removes the encrypted database and its key so the next start
// sets up a new password
func forgetDatabase() error {
	path := appInstance.Config.Database.Path
	if err := appInstance.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	for _, f := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", f, err)
		}
	}

	if err := crypto.NewKeyring().DeleteKey(); err != nil {
		fmt.Printf("Database removed; the stored key could not be deleted: %v\n", err)
		return nil
	}

	fmt.Println("Database and encryption key have been deleted.")
	return nil
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.AddCommand(resetTimesheetsCmd)
	resetCmd.AddCommand(resetAllCmd)

	resetAllCmd.Flags().Bool("forget-key", false, "Delete the database file and its stored encryption key")
}
