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

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var toMarkdownCmd = &cobra.Command{
	Use:   "to-markdown <file.docx>",
	Short: "Convert a Word document to markdown",
	Long: `Convert a .docx file to a markdown file in the current working
directory. Images are extracted into an output directory alongside the
markdown and referenced with relative links.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir := resolveOutputDir(cmd)

		request := map[string]any{
			"file_path": args[0],
		}
		if outputDir != "" {
			request["output_dir"] = outputDir
		}
		return runTool("word_to_markdown", request)
	},
}

var toWordCmd = &cobra.Command{
	Use:   "to-word <file.md>",
	Short: "Convert a markdown file to a Word document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir := resolveOutputDir(cmd)

		request := map[string]any{
			"file_path": args[0],
		}
		if outputDir != "" {
			request["output_dir"] = outputDir
		}
		return runTool("markdown_to_word", request)
	},
}

// resolveOutputDir prefers the flag, then the output_dir config key.
func resolveOutputDir(cmd *cobra.Command) string {
	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = viper.GetString("output_dir")
	}
	return outputDir
}

func init() {
	toMarkdownCmd.Flags().String("output-dir", "", "directory for extracted images")
	toWordCmd.Flags().String("output-dir", "", "directory for conversion artifacts")

	rootCmd.AddCommand(toMarkdownCmd)
	rootCmd.AddCommand(toWordCmd)
}
