package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/p-jackson/arm/internal/forest"
	"github.com/p-jackson/arm/internal/manifest"
	"github.com/p-jackson/arm/internal/marker"
)

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Clone missing dependencies",
		Long: `Clone every dependency in the manifest that is not present yet. Present
dependencies are left alone, so install is safe to repeat.

Run from a freshly cloned main repository with no root marker, install first
writes the marker from the manifest's rootDirectory.`,
		Args: cobra.NoArgs,
		RunE: runInstall,
	}
	cmd.Flags().String("manifest", "", "Use arm_<name>.json and remember it in the root marker")
	return cmd
}

func runInstall(cmd *cobra.Command, _ []string) error {
	manifestName, _ := cmd.Flags().GetString("manifest")

	root, err := forest.LocateRoot()
	if forest.IsRootNotFound(err) && isFile(manifest.Path(".", manifestName)) {
		root, err = forest.Bootstrap(newEnv(cmd, ""), ".", manifestName)
		if err == nil {
			err = os.Chdir(root)
		}
	}
	if err != nil {
		return err
	}

	f, err := forest.Load(root, manifestName)
	if err != nil {
		return err
	}
	if manifestName != "" && f.Marker.Manifest != manifestName {
		f.Marker.Manifest = manifestName
		if err := marker.Save(root, f.Marker); err != nil {
			return err
		}
		log.Info().Str("manifest", manifestName).Msg("recorded manifest in root marker")
	}

	_, err = f.Install(cmd.Context(), newEnv(cmd, root))
	return err
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
