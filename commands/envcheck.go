package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"multimodel-api/config"
)

var envCheckCmd = &cobra.Command{
	Use:   "env-check",
	Short: "Report which provider variables are set",
	Long: `env-check prints every variable the service reads with its status.
It exits non-zero when a required variable is missing or blank.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(envFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return checkEnv(cmd.OutOrStdout(), cfg)
	},
}

func checkEnv(w io.Writer, cfg *config.Config) error {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	var missing []string
	for _, v := range config.EnvVars {
		value := strings.TrimSpace(cfg.Value(v.Name))

		var status string
		switch {
		case value != "":
			status = green("set")
		case v.Required:
			status = red("missing")
			missing = append(missing, v.Name)
		default:
			status = yellow("unset")
		}

		kind := "optional"
		if v.Required {
			kind = "required"
		}
		fmt.Fprintf(w, "  %-20s %-9s %s  %s\n", v.Name, kind, status, faint("e.g. "+v.Example))
	}

	if len(missing) > 0 {
		fmt.Fprintln(w)
		return fmt.Errorf("Missing required environment variables: %s", strings.Join(missing, ", "))
	}
	fmt.Fprintln(w, green("\nAll required variables are set."))
	return nil
}
