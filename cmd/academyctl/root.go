package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/enovcorp/academy-core/internal/client"
	"github.com/enovcorp/academy-core/internal/draft"
)

var (
	draftsPath string
	remoteURL  string
	adminKey   string
)

var rootCmd = &cobra.Command{
	Use:   "academyctl",
	Short: "Edit the training catalog locally and publish it to the remote authority",
	Long: `academyctl keeps a local draft copy of the Enov Academy training catalog.
Drafts are edited and validated offline, then published wholesale: the
remote collection always ends up equal to what you push.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&draftsPath, "drafts", defaultDraftsPath(), "Path to the local drafts file")
	rootCmd.PersistentFlags().StringVar(&remoteURL, "remote", os.Getenv("ACADEMY_REMOTE_URL"), "Base URL of the catalog server")
	rootCmd.PersistentFlags().StringVar(&adminKey, "key", os.Getenv("ACADEMY_ADMIN_KEY"), "Admin key for the catalog server")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(duplicateCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(uploadCmd)
}

func defaultDraftsPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "academyctl", "drafts.json")
	}
	return ".academy-drafts.json"
}

func openStore() *draft.Store {
	return draft.Open(draftsPath)
}

func newClient() (*client.Client, error) {
	if remoteURL == "" {
		return nil, fmt.Errorf("remote base url is not set (--remote or ACADEMY_REMOTE_URL)")
	}
	if adminKey == "" {
		return nil, fmt.Errorf("admin key is not set (--key or ACADEMY_ADMIN_KEY)")
	}
	return client.New(remoteURL, adminKey), nil
}
