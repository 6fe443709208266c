// Copyright 2026 Wuyi Zhangxiang
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

// Package main is the entry point for the document-agent CLI. Each engine
// tool is exposed as a subcommand; the orchestration layer composes them
// into the editorial pipeline.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	docagent "github.com/Wuyi-zhangxiang/document-agent"
)

// version is set at build time via ldflags.
var version = "dev"

// toolkit is shared by all subcommands.
var toolkit *docagent.Toolkit

var rootCmd = &cobra.Command{
	Use:     "document-agent",
	Version: version,
	Short:   "Structured editing and Word/markdown conversion for editorial pipelines",
	Long: `document-agent converts Word documents to a markdown subset and back,
splits markdown into per-chapter files, applies targeted batch edits, and
merges chapters. Each subcommand is a stateless file-to-file transform;
an orchestration layer sequences them into a pipeline.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		toolkit = docagent.New()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./document-agent.yaml or ~/.config/document-agent/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("document-agent")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "document-agent"))
		}
	}

	viper.SetEnvPrefix("DOCUMENT_AGENT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// runTool dispatches a request to a tool and prints the response. A failed
// status becomes a non-zero exit.
func runTool(tool string, request any) error {
	params, err := json.Marshal(request)
	if err != nil {
		return err
	}

	response := toolkit.Call(tool, string(params))
	fmt.Println(response)
	if !isSuccess(response) {
		os.Exit(1)
	}
	return nil
}

// isSuccess inspects a tool response's status field.
func isSuccess(response string) bool {
	var status struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal([]byte(response), &status); err != nil {
		return false
	}
	return status.Status == docagent.StatusSuccess
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
