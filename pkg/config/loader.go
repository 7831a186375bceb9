package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load 初始化 Viper 配置
// cfgFile: 可选，用户显式指定的配置文件路径
func Load(cfgFile string) error {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		// 搜索顺序：当前目录 -> ./.sv -> ~/.sv
		viper.AddConfigPath(".")
		viper.AddConfigPath(".sv")
		viper.AddConfigPath(filepath.Join(home, ".sv"))

		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// 环境变量 (SV_STORAGE_DIR 等)
	viper.SetEnvPrefix("SV")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// 没找到配置文件不算错，有默认值和环境变量兜底
		// 配置文件格式坏了才是错
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("fatal error config file: %w", err)
		}
	}

	return nil
}

func setDefaults() {
	wd, _ := os.Getwd()
	viper.SetDefault("storage.dir", filepath.Join(wd, "objects"))
}
