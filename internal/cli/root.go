package cli

import (
	"github.com/andy/labourcost/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "labourcost",
	Short: "Weekly labour cost calculator for small payrolls",
	Long: `Labourcost works out what each employee costs the business for a week:
pay, sick pay, deductions, employer national insurance and holiday accrual.

By default, running labourcost without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

// NeedsApp reports whether the command line runs a command that uses the database
func NeedsApp(args []string) bool {
	for _, a := range args {
		switch a {
		case "-h", "--help", "help", "demo", "completion", "--version":
			return false
		}
	}
	return true
}

func init() {
	rootCmd.AddCommand(employeesCmd)
	rootCmd.AddCommand(salaryCmd)
	rootCmd.AddCommand(payrollCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tuiCmd)
}
