package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portside-dev/portside/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Write a commented sample configuration file.

Without --config the file is written to the default location at
$XDG_CONFIG_HOME/portside/config.yaml.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	var path string
	var err error

	if cfgFile != "" {
		path = cfgFile
		err = config.InitConfigToPath(cfgFile, initForce)
	} else {
		path, err = config.InitConfig(initForce)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Configuration file created at: %s\n", path)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to customize your setup")
	fmt.Println("  2. Start the instance with: portside start")
	return nil
}
