/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "m2c",
	Short: "Multi-material compressible/incompressible flow solver",
	Long: `
m2c runs a parallel, structured-grid, multi-material flow solver with
embedded-boundary and level-set tracking.`,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.m2c.yaml)")
}

// initConfig loads ~/.m2c.yaml (or --config) into viper, so subcommand
// flags can fall back to persisted defaults instead of requiring every
// flag on every invocation.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".m2c")
	}
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// Execute runs the root command, returning a process exit code: 0 on
// success, -1 on any configuration/topology/I-O error.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return -1
	}
	return 0
}
