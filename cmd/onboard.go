package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/textmath/textmath/internal/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize configuration",
	RunE:  runOnboard,
}

func runOnboard(_ *cobra.Command, _ []string) error {
	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}

	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Printf("Config already exists at %s\n", cfgPath)
		fmt.Printf("Press Enter to refresh (keep existing values) or Ctrl+C to cancel: ")
		fmt.Scanln()
		existing, loadErr := config.Load(cfgPath)
		if loadErr != nil {
			def := config.DefaultConfig()
			existing = &def
		}
		if err := config.Save(existing, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Config refreshed at %s\n", cfgPath)
	} else {
		cfg := config.DefaultConfig()
		if err := config.Save(&cfg, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Created config at %s\n", cfgPath)
	}

	fmt.Printf("\n%s textmath is ready!\n\n", logo)
	fmt.Println("Next steps:")
	fmt.Println("  1. Put GROQ_API_KEY=<your key> in a .env file")
	fmt.Println("     Get one at: https://console.groq.com/keys")
	fmt.Println("  2. Start the web UI: textmath serve")
	fmt.Println("     or ask directly: textmath ask -m \"What is 37593 * 67?\"")
	return nil
}
