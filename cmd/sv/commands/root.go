package commands

import (
	"fmt"
	"os"

	"simvault/pkg/app"
	"simvault/pkg/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	// 全局应用实例，供子命令使用
	SV *app.App
)

var rootCmd = &cobra.Command{
	Use:   "sv",
	Short: "simvault: saved-object store for simulation maps and snapshots",
	// PersistentPreRunE 在所有子命令执行前统一初始化 App
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		SV, err = app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize simvault: %w", err)
		}
		return nil
	},
}

// Execute 是入口
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sv/config.yaml)")

	// storage.dir 既可以写在 yaml 里，也可以用 --dir 覆盖
	rootCmd.PersistentFlags().String("dir", "", "directory holding saved objects")
	if err := viper.BindPFlag("storage.dir", rootCmd.PersistentFlags().Lookup("dir")); err != nil {
		fmt.Println("Failed to bind flag:", err)
		os.Exit(1)
	}
}

func initConfig() {
	if err := config.Load(cfgFile); err != nil {
		fmt.Println("Config error:", err)
		os.Exit(1)
	}
}
