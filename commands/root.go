package commands

import (
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "multimodel-api",
	Short: "Multi-model chat API (DeepSeek → Qwen → Gemini)",
	Long: `multimodel-api serves POST /api/chat, forwarding each message through
DeepSeek, Qwen and Gemini in sequence and returning a synthesized answer
with a confidence score.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading the environment (default .env)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(envCheckCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
