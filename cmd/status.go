package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/textmath/textmath/internal/config"
	"github.com/textmath/textmath/internal/providers"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show textmath status",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}

	fmt.Printf("%s textmath Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	cfgMark := "✗"
	if statErr == nil {
		cfgMark = "✓"
	}
	fmt.Printf("Config:    %s %s\n", cfgPath, cfgMark)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	fmt.Printf("Model:     %s\n", cfg.Agents.Defaults.Model)
	fmt.Printf("Mode:      %s\n", cfg.Agents.Defaults.Mode)
	fmt.Printf("Web UI:    http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)

	cred, err := cfg.LoadCredential()
	if err != nil {
		fmt.Printf("Key:       ✗ %v\n\n", err)
	} else {
		fmt.Printf("Key:       ✓ %s (%s, from %s)\n\n", cred.Redacted(), cred.Provider, cred.Source)
	}

	fmt.Println("Providers:")
	for _, spec := range providers.PROVIDERS {
		p := cfg.ProviderByName(spec.Name)
		if p == nil {
			continue
		}
		label := spec.Label()
		switch {
		case p.APIKeyEnv != "" && os.Getenv(p.APIKeyEnv) != "":
			fmt.Printf("  %-20s ✓ $%s\n", label, p.APIKeyEnv)
		case p.APIKey != "":
			fmt.Printf("  %-20s ✓\n", label)
		case spec.IsDirect && p.APIBase != "":
			fmt.Printf("  %-20s ✓ %s\n", label, p.APIBase)
		default:
			fmt.Printf("  %-20s (not set)\n", label)
		}
	}
	return nil
}
