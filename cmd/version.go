package cmd

import (
	"fmt"
	"runtime"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const releaseRepo = "s0up4200/edinet"

var (
	version   = "dev"
	buildTime = "unknown"

	checkLatest bool
	forceUpdate bool
)

// SetVersion records build information injected through ldflags
func SetVersion(v, t string) {
	version = v
	buildTime = t
	rootCmd.Version = v
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{skipInit: "true"},
	RunE:        runVersion,
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:         "update",
	Short:       "Update edinet to the latest release",
	Long:        `Replace the running binary with the latest GitHub release for this platform.`,
	Annotations: map[string]string{skipInit: "true"},
	RunE:        runUpdate,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)

	versionCmd.Flags().BoolVar(&checkLatest, "check", false, "check GitHub for a newer release")
	updateCmd.Flags().BoolVar(&forceUpdate, "force", false, "update even when running a development build")
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Printf("edinet %s (built %s, %s/%s)\n", version, buildTime, runtime.GOOS, runtime.GOARCH)

	if !checkLatest {
		return nil
	}

	latest, found, err := selfupdate.DetectLatest(cmd.Context(), selfupdate.ParseSlug(releaseRepo))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		fmt.Println("No release found for this platform")
		return nil
	}

	if current, err := currentVersion(); err == nil && latest.LessOrEqual(current.String()) {
		fmt.Println("✓ Up to date")
		return nil
	}
	fmt.Printf("A newer release is available: %s\n%s\n", latest.Version(), latest.URL)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	current, err := currentVersion()
	if err != nil && !forceUpdate {
		return fmt.Errorf("cannot update development build %q (use --force): %w", version, err)
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(releaseRepo))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	if !forceUpdate && latest.LessOrEqual(current.String()) {
		fmt.Printf("✓ Already running the latest version (%s)\n", current)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}

	fmt.Printf("→ Updating to %s... ", latest.Version())
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		fmt.Println("✗ Failed")
		return fmt.Errorf("failed to update binary: %w", err)
	}
	fmt.Println("✓ Done")

	return nil
}

// currentVersion parses the build version, accepting a leading "v"
func currentVersion() (semver.Version, error) {
	return semver.ParseTolerant(version)
}
